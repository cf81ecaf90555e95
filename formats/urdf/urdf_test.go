// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package urdf

import (
	"bytes"
	"log/slog"
	"path"
	"testing"

	"cogentcore.org/xyzasset/assembly"
	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/formats/model"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/physics"
	"cogentcore.org/xyzasset/physics/collider"
	"cogentcore.org/xyzasset/physics/joint"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
	"github.com/hack-pad/hackpadfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cart = `<?xml version="1.0"?>
<robot name="cart">
  <material name="red"><color rgba="1 0 0 1"/></material>
  <link name="base">
    <inertial><mass value="5"/></inertial>
    <visual>
      <geometry><box size="2 1 0.5"/></geometry>
      <material name="red"/>
    </visual>
    <visual>
      <geometry><sphere radius="1"/></geometry>
    </visual>
  </link>
  <link name="wheel">
    <visual>
      <geometry><mesh filename="package://cart/wheel.model"/></geometry>
    </visual>
  </link>
  <joint name="axle" type="continuous">
    <origin xyz="1 0 0.5" rpy="0 0 0"/>
    <parent link="base"/>
    <child link="wheel"/>
    <axis xyz="0 1 0"/>
  </joint>
</robot>`

const wheel = `{
	"asset": {"version": "1.0"},
	"nodes": [
		{"name": "hub", "children": [1]},
		{"name": "tire", "mesh": 0}
	],
	"meshes": [{"name": "tire", "primitives": [{"positions": [[0.3, 0, 0], [0, 0.3, 0]]}]}]
}`

type env struct {
	rs  *asset.Resolver
	log *bytes.Buffer
}

// seed writes a file straight into the filesystem of its source,
// which may be read-only.
func seed(t *testing.T, srcs *asset.Sources, ps, data string) {
	t.Helper()
	p := asset.MustParsePath(ps)
	src, ok := srcs.Source(p.Source)
	require.True(t, ok, p.Source)
	if dir := path.Dir(p.Rel); dir != "." {
		require.NoError(t, hackpadfs.MkdirAll(src.FS, dir, 0o755))
	}
	require.NoError(t, hackpadfs.WriteFullFile(src.FS, p.Rel, []byte(data), 0o644))
}

func newEnv(t *testing.T) *env {
	srcs := asset.DefaultSources()
	seed(t, srcs, "assets://robots/cart.urdf", cart)
	seed(t, srcs, "packages://cart/wheel.model", wheel)
	srv := asset.NewServer(srcs, asset.NewFormats(Format{}, model.JSON{}), 2)
	sc := scene.NewSchedule(scene.NewWorld())
	ev := &env{rs: asset.NewResolver(sc, srv), log: &bytes.Buffer{}}
	lg := slog.New(slog.NewTextHandler(ev.log, nil))
	ev.rs.Logger = lg
	(&joint.Binder{Logger: lg}).Install(sc)
	(&collider.Approximator{Server: srv, Logger: lg}).Install(sc)
	return ev
}

func (ev *env) run(n int) {
	for range n {
		ev.rs.Server.Wait()
		ev.rs.Schedule.Tick()
	}
}

func TestParse(t *testing.T) {
	lc := &asset.LoadContext{Path: asset.MustParsePath("assets://robots/cart.urdf")}
	a, err := Format{}.Parse([]byte(cart), lc)
	require.NoError(t, err)
	rb := a.(*Robot)
	assert.Equal(t, "cart", rb.Name)
	require.Len(t, rb.Links, 2)
	assert.Equal(t, Vector(math32.Vec3(2, 1, 0.5)), rb.Links[0].Visuals[0].Geometry.Box.Size)
	assert.Equal(t, RGBA{1, 0, 0, 1}, rb.Materials[0].Color.RGBA)
	assert.Equal(t, "continuous", rb.Joints[0].Type)

	b, err := Format{}.Serialize(rb)
	require.NoError(t, err)
	a2, err := Format{}.Parse(b, lc)
	require.NoError(t, err)
	assert.Equal(t, rb, a2.(*Robot))

	a, err = Format{}.Parse([]byte(`<robot name="empty"/>`), lc)
	assert.NoError(t, err)
	assert.Nil(t, a)
	_, err = Format{}.Parse([]byte(`<robot><link name="a"><visual><geometry><box size="1 2"/></geometry></visual></link></robot>`), lc)
	assert.Error(t, err)
}

func TestRobotEndToEnd(t *testing.T) {
	ev := newEnv(t)
	rs := ev.rs
	w := rs.Schedule.World
	ps := scene.NewPose()
	ps.Pos = math32.Vec3(0, 0, 10)
	top := asset.Stage[*Robot](rs, asset.MustParsePath("assets://robots/cart.urdf"), ps)
	w.Commands().Apply()
	ev.run(20)

	links := rs.Ledger.Children(top)
	require.Len(t, links, 2)
	grouped := 0
	scene.Each(w, func(id scene.NodeID, g *scene.Group) {
		if *g == "cart" {
			grouped++
		}
	})
	assert.Equal(t, 2, grouped)
	assert.Equal(t, 1, scene.Count[joint.Binding](w))
	assert.Equal(t, 0, scene.Count[joint.Spec](w))

	base, wh := links[0], links[1]
	assert.Equal(t, "base", scene.NameOf(w, base))
	bn, _ := scene.Get[joint.Binding](w, wh)
	assert.Equal(t, base, bn.Parent)
	assert.Equal(t, joint.RevoluteLocked, bn.Descriptor.Locked)

	// links are separate, placed from the requesting node
	_, hasParent := w.Parent(base)
	assert.False(t, hasParent)
	wp, _ := scene.Get[scene.Pose](w, wh)
	assert.True(t, wp.Pos.IsEqualTol(math32.Vec3(1, 0.5, 10), 1e-5), "%v", wp.Pos)

	ms, _ := scene.Get[physics.Mass](w, base)
	assert.Equal(t, float32(5), ms.Mass)
	mt, _ := scene.Get[xyz.Material](w, base)
	assert.Equal(t, "red", mt.Name)
	cl, _ := scene.Get[collider.Collider](w, base)
	assert.Equal(t, math32.Vec3(1, 0.25, 0.5), cl.HalfExtents)
	assert.Contains(t, ev.log.String(), "only the first visual")
	cc, _ := scene.Get[physics.ContinuousCollision](w, base)
	assert.True(t, cc.Enabled)

	// the wheel mesh is materialized under the wheel link
	assert.False(t, asset.IsStaged(w, wh))
	wcl, ok := scene.Get[collider.Collider](w, wh)
	require.True(t, ok)
	assert.Equal(t, collider.Convex, wcl.Shape)
	assert.Len(t, wcl.Hull.Points, 2)
	hub := w.Children(wh)
	require.Len(t, hub, 1)
	assert.True(t, scene.Has[physics.CollisionGroups](w, hub[0]))
	assert.False(t, scene.Has[MeshGroups](w, wh))
}

func TestCompose(t *testing.T) {
	ev := newEnv(t)
	rs := ev.rs
	w := rs.Schedule.World
	top := asset.Stage[*Robot](rs, asset.MustParsePath("assets://robots/cart.urdf"))
	w.Commands().Apply()
	ev.run(20)

	env := &assembly.Env{World: w, Server: rs.Server, Logger: rs.Logger}
	doc, err := Format{}.Compose(env, rs.Ledger.Children(top), ComposeParams{RobotName: "copy"})
	require.NoError(t, err)
	rb := doc.(*Robot)
	assert.Equal(t, "copy", rb.Name)
	require.Len(t, rb.Links, 2)
	require.Len(t, rb.Joints, 1)
	jt := rb.Joints[0]
	assert.Equal(t, "continuous", jt.Type)
	assert.Equal(t, "base", jt.Parent.Link)
	assert.Equal(t, "wheel", jt.Child.Link)
	assert.True(t, jt.Origin.XYZ.V().IsEqualTol(math32.Vec3(1, 0, 0.5), 1e-5))
	assert.True(t, jt.Axis.XYZ.V().IsEqualTol(math32.Vec3(0, 1, 0), 1e-5))
	assert.True(t, rb.Links[0].Visuals[0].Geometry.Box.Size.V().IsEqualTol(math32.Vec3(2, 1, 0.5), 1e-6))
	require.Len(t, rb.Materials, 1)
	assert.Equal(t, "red", rb.Materials[0].Name)

	_, err = Format{}.Compose(env, nil, ComposeParams{})
	assert.Error(t, err)
}
