// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"bytes"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/metrics"
	"cogentcore.org/xyzasset/scene"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nameList is a document listing node names.
type nameList struct {
	Title string
	Names []string
}

func (nl *nameList) Decompose(dc *asset.DecomposeContext) (asset.Structure, error) {
	return asset.Root(), nil
}

type listParams struct {
	Title string
	Tags  []string
}

type listFormat struct {
	exts []string
}

func (lf listFormat) Name() string         { return "names" }
func (lf listFormat) Extensions() []string { return lf.exts }

func (lf listFormat) Parse(data []byte, lc *asset.LoadContext) (any, error) {
	return &nameList{Names: strings.Split(string(data), "\n")}, nil
}

func (lf listFormat) Serialize(doc asset.Document) ([]byte, error) {
	nl := doc.(*nameList)
	if nl.Title == "fail" {
		return nil, fmt.Errorf("cannot serialize")
	}
	return []byte(strings.Join(nl.Names, "\n")), nil
}

func (lf listFormat) Compose(env *Env, selected []scene.NodeID, params listParams) (asset.Document, error) {
	if params.Title == "reject" {
		return nil, fmt.Errorf("cannot compose")
	}
	nl := &nameList{Title: params.Title}
	for _, id := range selected {
		nl.Names = append(nl.Names, scene.NameOf(env.World, id))
	}
	return nl, nil
}

func setup(t *testing.T) (*Collector, *scene.Schedule, *bytes.Buffer) {
	srcs := asset.DefaultSources()
	srv := asset.NewServer(srcs, asset.NewFormats(), 1)
	c := NewCollector(srcs, srv, 2)
	var buf bytes.Buffer
	c.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	m, err := metrics.New(nil)
	require.NoError(t, err)
	c.Metrics = m
	sc := scene.NewSchedule(scene.NewWorld())
	c.Install(sc)
	c.Install(sc)
	require.Equal(t, 1, sc.NumSystems())
	return c, sc, &buf
}

func tickUntilDone(c *Collector, sc *scene.Schedule) {
	for range 4 {
		sc.Tick()
		c.Wait()
	}
}

func TestAssembly(t *testing.T) {
	c, sc, buf := setup(t)
	w := sc.World
	a := w.Spawn(scene.Name("a"))
	b := w.Spawn(scene.Name("b"))
	x := w.Spawn(scene.Name("x"))
	c.Groups.Add("robot", b, a)
	c.Groups.Add("robot", a)
	assert.Equal(t, 2, c.Groups.Len("robot"))

	params := listParams{Title: "t", Tags: []string{"one"}}
	Enqueue(c, listFormat{exts: []string{"names", "txt"}}, "robot", []scene.NodeID{x}, "saves://out/robot", params)
	params.Tags[0] = "changed"
	assert.Equal(t, 1, c.Pending())
	tickUntilDone(c, sc)

	done := c.Done.Drain()
	require.Len(t, done, 1)
	assert.Equal(t, "robot", done[0].BaseName)
	assert.Equal(t, "saves://out/robot.names", done[0].Path.String())
	assert.Equal(t, "names", done[0].Format)
	assert.Equal(t, reflect.TypeFor[*nameList](), done[0].Type)
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, 0, c.Groups.Len("robot"))
	assert.Contains(t, buf.String(), "several extensions")

	data, err := c.Sources.Read(done[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nx", string(data))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Metrics.Assemblies.WithLabelValues("written")))
}

func TestAssemblyDropped(t *testing.T) {
	c, sc, buf := setup(t)
	lf := listFormat{exts: []string{"names"}}
	Enqueue(c, lf, "g", nil, "assets://out/robot", listParams{})
	Enqueue(c, lf, "g", nil, "nowhere://out/robot", listParams{})
	tickUntilDone(c, sc)
	assert.Empty(t, c.Done.Drain())
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Metrics.Assemblies.WithLabelValues("dropped")))
	assert.Contains(t, buf.String(), "not registered for writing")
	_, err := c.Sources.Read(asset.MustParsePath("assets://out/robot.names"))
	assert.Error(t, err)
}

func TestAssemblyWriteFails(t *testing.T) {
	c, sc, _ := setup(t)
	Enqueue(c, listFormat{exts: []string{"names"}}, "g", nil, "saves://bad", listParams{Title: "fail"})
	tickUntilDone(c, sc)
	assert.Empty(t, c.Done.Drain())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Metrics.Assemblies.WithLabelValues("failed")))
}

func TestAssemblyComposeFails(t *testing.T) {
	c, sc, buf := setup(t)
	w := sc.World
	a := w.Spawn(scene.Name("a"))
	b := w.Spawn(scene.Name("b"))
	c.Groups.Add("g", a, b)
	lf := listFormat{exts: []string{"names"}}
	Enqueue(c, lf, "g", nil, "saves://first", listParams{Title: "reject"})
	tickUntilDone(c, sc)
	assert.Empty(t, c.Done.Drain())
	assert.Contains(t, buf.String(), "assembly compose failed")
	assert.Equal(t, 2, c.Groups.Len("g"))

	Enqueue(c, lf, "g", []scene.NodeID{b, a}, "saves://second", listParams{})
	tickUntilDone(c, sc)
	done := c.Done.Drain()
	require.Len(t, done, 1)
	assert.Equal(t, 0, c.Groups.Len("g"))
	data, err := c.Sources.Read(done[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", string(data))
}

func TestTaskPoll(t *testing.T) {
	release := make(chan struct{})
	tk := newTask(func() error {
		<-release
		return nil
	})
	go tk.exec()
	done, _ := tk.Poll()
	assert.False(t, done)
	close(release)
	<-tk.done
	done, err := tk.Poll()
	assert.True(t, done)
	assert.NoError(t, err)
	assert.NotEqual(t, tk.ID, newTask(nil).ID)
}
