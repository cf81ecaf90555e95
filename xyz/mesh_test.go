// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints(t *testing.T) {
	srv := asset.NewServer(asset.DefaultSources(), asset.NewFormats(), 1)
	tests := []struct {
		geom Geometry
		want []math32.Vector3
	}{
		{Geometry{Shape: ShapeBox, Size: math32.Vec3(2, 4, 6)},
			[]math32.Vector3{math32.Vec3(1, 2, 3), math32.Vec3(-1, -2, -3)}},
		{Geometry{Shape: ShapeCylinder, Size: math32.Vec3(0.5, 2, 0)},
			[]math32.Vector3{math32.Vec3(0.5, 1, 0.5), math32.Vec3(-0.5, -1, -0.5)}},
		{Geometry{Shape: ShapeSphere, Size: math32.Vec3(3, 0, 0)},
			[]math32.Vector3{math32.Vec3(3, 3, 3), math32.Vec3(-3, -3, -3)}},
	}
	for _, tt := range tests {
		pts, ok := tt.geom.Points(srv)
		require.True(t, ok, tt.geom.Shape.String())
		assert.Equal(t, tt.want, pts, tt.geom.Shape.String())
	}

	pos := []math32.Vector3{math32.Vec3(0, 1, 0), math32.Vec3(2, -1, 0), math32.Vec3(0, 0, 5)}
	h := srv.Insert(asset.MustParsePath("assets://tri.model#Mesh0/Primitive0/Geometry"), &MeshData{Name: "tri", Positions: pos})
	gm := MeshGeometry(h)
	pts, ok := gm.Points(srv)
	require.True(t, ok)
	assert.Equal(t, pos, pts)

	gm = MeshGeometry(asset.Handle{})
	_, ok = gm.Points(srv)
	assert.False(t, ok)
}

func TestMeshData(t *testing.T) {
	md := &MeshData{Name: "tri", Positions: []math32.Vector3{math32.Vec3(0, 1, 0), math32.Vec3(2, -1, 0), math32.Vec3(0, 0, 5)}}
	bb := md.BBox()
	assert.Equal(t, math32.Vec3(0, -1, 0), bb.Min)
	assert.Equal(t, math32.Vec3(2, 1, 5), bb.Max)
	assert.Equal(t, "tri: 3 positions, 0 indexes", md.String())
	assert.Equal(t, "cylinder", ShapeCylinder.String())
	assert.Equal(t, "Shape(9)", Shape(9).String())
}
