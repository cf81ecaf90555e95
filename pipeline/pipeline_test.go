// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"path"
	"reflect"
	"testing"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/base/errors"
	"cogentcore.org/xyzasset/config"
	"cogentcore.org/xyzasset/formats/model"
	"cogentcore.org/xyzasset/formats/urdf"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/physics/collider"
	"cogentcore.org/xyzasset/physics/joint"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
	"github.com/hack-pad/hackpadfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const robot = `<robot name="rover">
  <link name="base"><visual><geometry><box size="1 1 1"/></geometry></visual></link>
  <link name="wheel"><visual><geometry><cylinder radius="0.4" length="0.1"/></geometry></visual></link>
  <joint name="axle" type="revolute">
    <parent link="base"/><child link="wheel"/>
    <limit lower="-1" upper="1" effort="3" velocity="2"/>
  </joint>
</robot>`

func newPipeline(t *testing.T) (*Pipeline, *prometheus.Registry) {
	cf := config.New()
	cf.Metrics = true
	reg := prometheus.NewRegistry()
	pl, err := New(cf, reg)
	require.NoError(t, err)
	return pl, reg
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

func (pl *Pipeline) run(n int) {
	for range n {
		pl.Wait()
		pl.Tick()
	}
}

func TestRobotRoundTrip(t *testing.T) {
	pl, _ := newPipeline(t)
	seed(t, pl.Sources, "packages://rover/rover.urdf", robot)
	top, err := Load[*urdf.Robot](pl, "packages://rover/rover.urdf")
	require.NoError(t, err)
	pl.run(6)

	links := pl.Resolver.Ledger.Children(top)
	require.Len(t, links, 2)
	assert.Equal(t, 1, scene.Count[joint.Binding](pl.World))
	assert.Equal(t, 0, scene.Count[joint.Spec](pl.World))
	assert.Equal(t, 1.0, testutil.ToFloat64(pl.Metrics.JointsBound))
	cl, ok := scene.Get[collider.Collider](pl.World, links[1])
	require.True(t, ok)
	assert.Equal(t, collider.Wheel, cl.Shape)

	pl.Collector.Groups.Add("rover", links...)
	Save(pl, urdf.Format{}, "rover", nil, "saves://robots/rover2", urdf.ComposeParams{RobotName: "rover2"})
	pl.run(3)
	done := pl.Completed()
	require.Len(t, done, 1)
	assert.Equal(t, "rover2", done[0].BaseName)
	assert.Equal(t, reflect.TypeFor[*urdf.Robot](), done[0].Type)

	// load what was written
	top2, err := Load[*urdf.Robot](pl, done[0].Path.String())
	require.NoError(t, err)
	pl.run(6)
	links2 := pl.Resolver.Ledger.Children(top2)
	require.Len(t, links2, 2)
	g, _ := scene.GroupOf(pl.World, links2[0])
	assert.Equal(t, scene.Group("rover2"), g)
	bn, ok := scene.Get[joint.Binding](pl.World, links2[1])
	require.True(t, ok)
	assert.Equal(t, links2[0], bn.Parent)
	lm := bn.Descriptor.Limits[joint.AxisAngX]
	assert.Equal(t, float32(-1), lm.Min)
	assert.Equal(t, float32(1), lm.Max)
}

func TestModelRoundTrip(t *testing.T) {
	pl, _ := newPipeline(t)
	w := pl.World
	a := w.Spawn(scene.Name("crate"), scene.NewPose(), xyz.Geometry{Shape: xyz.ShapeBox, Size: math32.Vec3(2, 2, 2)},
		collider.Request{Shape: collider.Cuboid})
	pl.run(1)
	require.True(t, scene.Has[collider.Collider](w, a))

	Save(pl, model.Binary{}, "none", []scene.NodeID{a}, "saves://scenes/crate", model.ComposeParams{SceneName: "crates"})
	pl.run(3)
	done := pl.Completed()
	require.Len(t, done, 1)
	assert.Equal(t, "saves://scenes/crate.modelb", done[0].Path.String())

	top, err := Load[*model.Model](pl, "saves://scenes/crate.modelb")
	require.NoError(t, err)
	pl.run(14)
	var leaves []scene.NodeID
	w.WalkDown(top, func(id scene.NodeID) bool {
		if scene.Has[xyz.Geometry](w, id) {
			leaves = append(leaves, id)
		}
		return true
	})
	require.Len(t, leaves, 1)
	cl, ok := scene.Get[collider.Collider](w, leaves[0])
	require.True(t, ok)
	assert.Equal(t, collider.Cuboid, cl.Shape)
}

func TestLoadFailures(t *testing.T) {
	pl, _ := newPipeline(t)
	seed(t, pl.Sources, "assets://broken.urdf", "<robot")
	_, err := Load[*urdf.Robot](pl, "broken.urdf")
	require.NoError(t, err)
	_, err = Load[*urdf.Robot](pl, "")
	assert.Error(t, err)
	pl.run(3)
	fails := pl.LoadFailures()
	require.Len(t, fails, 1)
	k, _ := errors.KindOf(fails[0].Err)
	assert.Equal(t, errors.KindParse, k)
	assert.Empty(t, pl.LoadFailures())
	assert.Equal(t, 1.0, testutil.ToFloat64(pl.Metrics.LoadFailures))
}

func TestNewErrors(t *testing.T) {
	cf := config.New()
	cf.Sources = append(cf.Sources, config.Source{Name: "saves"})
	_, err := New(cf, nil)
	assert.Error(t, err)

	cf = config.New()
	cf.Metrics = true
	reg := prometheus.NewRegistry()
	_, err = New(cf, reg)
	require.NoError(t, err)
	_, err = New(cf, reg)
	assert.Error(t, err)
}
