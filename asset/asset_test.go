// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"testing"

	"cogentcore.org/xyzasset/base/errors"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/scene"
	"github.com/hack-pad/hackpadfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listDoc is a test document with one child per line.
type listDoc struct {
	Names []string
	Split SplitPolicy
}

func (ld *listDoc) Decompose(dc *DecomposeContext) (Structure, error) {
	if len(ld.Names) == 0 {
		return Structure{}, fmt.Errorf("empty list")
	}
	bs := make([]Bundle, len(ld.Names))
	for i, n := range ld.Names {
		ps := scene.NewPose()
		ps.Pos.X = float32(i)
		bs[i] = Bundle{scene.Name(n), ps}
	}
	return Children(ld.Split, bs...), nil
}

// lineDoc is a labeled line of a listDoc.
type lineDoc struct {
	Name string
}

func (ln *lineDoc) Decompose(dc *DecomposeContext) (Structure, error) {
	return Root(scene.Name(ln.Name)), nil
}

type listFormat struct{}

func (listFormat) Name() string         { return "list" }
func (listFormat) Extensions() []string { return []string{"list", "lst"} }

func (listFormat) Parse(data []byte, lc *LoadContext) (any, error) {
	s := strings.TrimSpace(string(data))
	if s == "!" {
		return nil, fmt.Errorf("bang")
	}
	doc := &listDoc{}
	if strings.HasPrefix(s, "separate\n") {
		doc.Split = SplitPolicy{Separate: true, InheritTransform: true}
		s = strings.TrimPrefix(s, "separate\n")
	}
	if s != "" {
		doc.Names = strings.Split(s, "\n")
	}
	for i, n := range doc.Names {
		lc.AddLabeled(fmt.Sprintf("Line%d", i), &lineDoc{Name: n})
	}
	return doc, nil
}

func (listFormat) Serialize(doc Document) ([]byte, error) {
	ld, ok := doc.(*listDoc)
	if !ok {
		return nil, fmt.Errorf("not a list: %T", doc)
	}
	return []byte(strings.Join(ld.Names, "\n")), nil
}

// blockFormat parses .block files into a one-line list once release
// is closed.
type blockFormat struct {
	release chan struct{}
}

func (blockFormat) Name() string         { return "block" }
func (blockFormat) Extensions() []string { return []string{"block"} }

func (bf blockFormat) Parse(data []byte, lc *LoadContext) (any, error) {
	<-bf.release
	return &listDoc{Names: []string{string(data)}}, nil
}

func (blockFormat) Serialize(doc Document) ([]byte, error) {
	return nil, fmt.Errorf("not supported")
}

// seed writes a file straight into the filesystem of its source,
// which may be read-only.
func seed(t *testing.T, srcs *Sources, ps, data string) {
	t.Helper()
	p := MustParsePath(ps)
	src, ok := srcs.Source(p.Source)
	require.True(t, ok, p.Source)
	if dir := path.Dir(p.Rel); dir != "." {
		require.NoError(t, hackpadfs.MkdirAll(src.FS, dir, 0o755))
	}
	require.NoError(t, hackpadfs.WriteFullFile(src.FS, p.Rel, []byte(data), 0o644))
}

func newTestResolver(t *testing.T, files map[string]string, fmts ...Format) *Resolver {
	srcs := DefaultSources()
	for k, v := range files {
		seed(t, srcs, k, v)
	}
	srv := NewServer(srcs, NewFormats(append(fmts, listFormat{})...), 2)
	return NewResolver(scene.NewSchedule(scene.NewWorld()), srv)
}

// tick runs one tick with all pending loads completed first.
func tick(rs *Resolver) {
	rs.Server.Wait()
	rs.Schedule.Tick()
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("assets://robots/./car.urdf#Link1", "")
	require.NoError(t, err)
	assert.Equal(t, Path{Source: "assets", Rel: "robots/car.urdf", Label: "Link1"}, p)
	assert.Equal(t, "assets://robots/car.urdf#Link1", p.String())
	assert.Equal(t, "urdf", p.Ext())
	assert.Equal(t, "car", p.Base())
	assert.Equal(t, "", p.File().Label)

	p, err = ParsePath("meshes/wheel.model", "packages")
	require.NoError(t, err)
	assert.Equal(t, "packages", p.Source)

	_, err = ParsePath("assets://../x", "")
	k, ok := errors.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, errors.KindSource, k)

	_, err = ParsePath("x.urdf", "")
	assert.Error(t, err)

	r, err := MustParsePath("assets://robots/car.urdf").Resolve("meshes/wheel.model#Mesh0")
	require.NoError(t, err)
	assert.Equal(t, "assets://robots/meshes/wheel.model#Mesh0", r.String())
	r, err = p.Resolve("saves://a.model")
	require.NoError(t, err)
	assert.Equal(t, "saves", r.Source)
}

func TestSources(t *testing.T) {
	srcs := DefaultSources()
	assert.Equal(t, []string{SourceAssets, SourcePackages, SourceSaves}, srcs.Names())
	assert.True(t, srcs.IsWritable(SourceSaves))
	assert.False(t, srcs.IsWritable(SourceAssets))
	assert.False(t, srcs.IsWritable("nope"))

	p := MustParsePath("saves://out/a.list")
	require.NoError(t, srcs.Write(p, []byte("x")))
	err := srcs.Write(MustParsePath("assets://a.list"), []byte("x"))
	k, _ := errors.KindOf(err)
	assert.Equal(t, errors.KindSource, k)
	b, err := srcs.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))

	_, err = srcs.Read(MustParsePath("saves://out/none.list"))
	k, _ = errors.KindOf(err)
	assert.Equal(t, errors.KindIO, k)

	_, err = srcs.Read(MustParsePath("nope://a.list"))
	k, _ = errors.KindOf(err)
	assert.Equal(t, errors.KindSource, k)

	dir := t.TempDir()
	ds, err := DirSource("disk", dir, true)
	require.NoError(t, err)
	srcs.Add(ds)
	require.NoError(t, srcs.Write(MustParsePath("disk://sub/b.list"), []byte("y")))
	b, err = srcs.Read(MustParsePath("disk://sub/b.list"))
	require.NoError(t, err)
	assert.Equal(t, "y", string(b))
}

func TestServer(t *testing.T) {
	srcs := DefaultSources()
	require.NoError(t, srcs.Write(MustParsePath("saves://a.list"), []byte("one\ntwo")))
	require.NoError(t, srcs.Write(MustParsePath("saves://bad.list"), []byte("!")))
	srv := NewServer(srcs, NewFormats(listFormat{}), 1)

	h := srv.Load(MustParsePath("saves://a.list"))
	hl := srv.Load(MustParsePath("saves://a.list#Line1"))
	hm := srv.Load(MustParsePath("saves://a.list#Line9"))
	hb := srv.Load(MustParsePath("saves://bad.list"))
	hx := srv.Load(MustParsePath("saves://none.txt"))
	srv.Wait()

	assert.Equal(t, Loaded, srv.State(h))
	doc, ok := Get[*listDoc](srv, h)
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, doc.Names)

	ln, ok := Get[*lineDoc](srv, hl)
	require.True(t, ok)
	assert.Equal(t, "two", ln.Name)

	assert.Equal(t, Failed, srv.State(hm))
	_, err := srv.Asset(hm)
	k, _ := errors.KindOf(err)
	assert.Equal(t, errors.KindMissing, k)

	assert.Equal(t, Failed, srv.State(hb))
	_, err = srv.Asset(hb)
	k, _ = errors.KindOf(err)
	assert.Equal(t, errors.KindParse, k)

	_, err = srv.Asset(hx)
	k, _ = errors.KindOf(err)
	assert.Equal(t, errors.KindFormat, k)

	assert.Equal(t, NotLoaded, srv.State(Handle{path: MustParsePath("saves://other.list")}))
	_, ok = Get[*lineDoc](srv, h)
	assert.False(t, ok)
}

func TestRequestStates(t *testing.T) {
	rs := newTestResolver(t, map[string]string{"assets://a.list": "one\ntwo"})
	w := rs.Schedule.World
	id := Stage[*listDoc](rs, MustParsePath("assets://a.list"))
	w.Commands().Apply()

	rs.Schedule.Tick()
	req, ok := scene.Get[Request[*listDoc]](w, id)
	require.True(t, ok)
	assert.Equal(t, StateHandle, req.State)
	assert.True(t, IsStaged(w, id))

	tick(rs)
	assert.False(t, scene.Has[Request[*listDoc]](w, id))
	assert.False(t, IsStaged(w, id))
	ch := w.Children(id)
	require.Len(t, ch, 2)
	assert.Equal(t, "one", scene.NameOf(w, ch[0]))
	assert.Equal(t, "two", scene.NameOf(w, ch[1]))
	assert.Equal(t, ch, rs.Ledger.Children(id))
}

func TestRequestFromDocument(t *testing.T) {
	rs := newTestResolver(t, nil)
	w := rs.Schedule.World
	InstallResolver[*lineDoc](rs)
	id := w.Spawn(FromDocument(MustParsePath("assets://x.list"), &lineDoc{Name: "direct"}))
	rs.Schedule.Tick()
	assert.Equal(t, "direct", scene.NameOf(w, id))
	assert.False(t, IsStaged(w, id))
	assert.Equal(t, 0, rs.Ledger.Len(id))
}

func TestLabeledRequest(t *testing.T) {
	rs := newTestResolver(t, map[string]string{"assets://a.list": "one\ntwo"})
	w := rs.Schedule.World
	id := Stage[*lineDoc](rs, MustParsePath("assets://a.list#Line0"))
	w.Commands().Apply()
	for range 3 {
		tick(rs)
	}
	assert.Equal(t, "one", scene.NameOf(w, id))
	assert.Empty(t, w.Children(id))
}

func TestLoadFailure(t *testing.T) {
	rs := newTestResolver(t, map[string]string{"assets://bad.list": "!"})
	w := rs.Schedule.World
	id := Stage[*listDoc](rs, MustParsePath("assets://bad.list"))
	w.Commands().Apply()
	for range 3 {
		tick(rs)
	}
	assert.False(t, IsStaged(w, id))
	assert.True(t, w.Alive(id))
	fails := rs.Failed.Drain()
	require.Len(t, fails, 1)
	assert.Equal(t, id, fails[0].Node)
	assert.Equal(t, "assets://bad.list", fails[0].Path.String())
}

func TestDecomposeError(t *testing.T) {
	rs := newTestResolver(t, map[string]string{"assets://empty.list": ""})
	w := rs.Schedule.World
	id := Stage[*listDoc](rs, MustParsePath("assets://empty.list"))
	w.Commands().Apply()
	for range 3 {
		tick(rs)
	}
	assert.False(t, IsStaged(w, id))
	assert.Empty(t, w.Children(id))
	assert.Equal(t, 0, rs.Ledger.Len(id))
}

func TestSeparateInheritTransform(t *testing.T) {
	rs := newTestResolver(t, map[string]string{"assets://s.list": "separate\na\nb"})
	w := rs.Schedule.World
	ps := scene.NewPose()
	ps.Pos = math32.Vec3(10, 0, 0)
	id := Stage[*listDoc](rs, MustParsePath("assets://s.list"), ps)
	w.Commands().Apply()
	for range 2 {
		tick(rs)
	}
	assert.Empty(t, w.Children(id))
	led := rs.Ledger.Children(id)
	require.Len(t, led, 2)
	for i, ch := range led {
		_, hasParent := w.Parent(ch)
		assert.False(t, hasParent)
		cp, ok := scene.Get[scene.Pose](w, ch)
		require.True(t, ok)
		assert.InDelta(t, 10+float32(i), cp.Pos.X, 1e-5)
	}

	// the inherited transform is a one-time copy
	pp, _ := scene.Get[scene.Pose](w, id)
	pp.Pos.X = 100
	tick(rs)
	cp, _ := scene.Get[scene.Pose](w, led[0])
	assert.InDelta(t, 10, cp.Pos.X, 1e-5)
}

func TestSharedLoad(t *testing.T) {
	rs := newTestResolver(t, map[string]string{"assets://a.list": "one"})
	w := rs.Schedule.World
	a := Stage[*listDoc](rs, MustParsePath("assets://a.list"))
	b := Stage[*listDoc](rs, MustParsePath("assets://a.list"))
	w.Commands().Apply()
	for range 2 {
		tick(rs)
	}
	assert.Len(t, w.Children(a), 1)
	assert.Len(t, w.Children(b), 1)
	assert.Equal(t, 1, rs.Schedule.NumSystems()-1)
}

func TestRepeatedExpansion(t *testing.T) {
	rs := newTestResolver(t, map[string]string{
		"assets://a.list": "one\ntwo",
		"assets://b.list": "three",
	})
	w := rs.Schedule.World
	id := Stage[*listDoc](rs, MustParsePath("assets://a.list"))
	w.Commands().Apply()
	for range 2 {
		tick(rs)
	}
	require.Len(t, w.Children(id), 2)

	StageOn[*listDoc](rs, id, MustParsePath("assets://b.list"))
	for range 3 {
		tick(rs)
	}
	ch := w.Children(id)
	assert.Len(t, ch, 3)
	assert.Equal(t, ch, rs.Ledger.Children(id))
	assert.Equal(t, len(ch), len(slices.Compact(slices.Sorted(slices.Values(ch)))))
	assert.Equal(t, "three", scene.NameOf(w, ch[2]))
	assert.False(t, IsStaged(w, id))
}

func TestParkedHandle(t *testing.T) {
	bf := blockFormat{release: make(chan struct{})}
	rs := newTestResolver(t, map[string]string{"assets://slow.block": "late"}, bf)
	w := rs.Schedule.World
	id := Stage[*listDoc](rs, MustParsePath("assets://slow.block"))
	w.Commands().Apply()

	for range 5 {
		rs.Schedule.Tick()
	}
	req, ok := scene.Get[Request[*listDoc]](w, id)
	require.True(t, ok)
	assert.Equal(t, StateHandle, req.State)
	assert.Equal(t, 4, req.FailedLoadAttempts)
	assert.True(t, IsStaged(w, id))
	assert.Empty(t, w.Children(id))
	assert.Zero(t, rs.Failed.Len())

	close(bf.release)
	tick(rs)
	assert.False(t, IsStaged(w, id))
	ch := w.Children(id)
	require.Len(t, ch, 1)
	assert.Equal(t, "late", scene.NameOf(w, ch[0]))
}
