// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/math32"
)

// MeshData is the vertex data of an indexed triangle mesh.
// Only positions and indexes are kept: that is all that bounding
// shapes and serialization need.
type MeshData struct {

	// Name is the name of the mesh.
	Name string

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Indexes are the triangle indexes into Positions; empty means
	// every three positions form a triangle.
	Indexes []uint32
}

// BBox returns the bounding box of the positions.
func (md *MeshData) BBox() math32.Box3 {
	var bb math32.Box3
	bb.SetFromPoints(md.Positions)
	return bb
}

func (md *MeshData) String() string {
	return fmt.Sprintf("%s: %d positions, %d indexes", md.Name, len(md.Positions), len(md.Indexes))
}

// Shape is the kind of a [Geometry].
type Shape int32

const (
	// ShapeMesh is geometry given by a [MeshData] asset.
	ShapeMesh Shape = iota

	// ShapeBox is a box with full side lengths in Size.
	ShapeBox

	// ShapeCylinder is a cylinder along Y, with radius Size.X and
	// length Size.Y.
	ShapeCylinder

	// ShapeSphere is a sphere with radius Size.X.
	ShapeSphere
)

func (sh Shape) String() string {
	switch sh {
	case ShapeMesh:
		return "mesh"
	case ShapeBox:
		return "box"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	}
	return fmt.Sprintf("Shape(%d)", int32(sh))
}

// Geometry is the renderable shape of a node: either a mesh asset or
// a parametric primitive.
type Geometry struct {
	Shape Shape

	// Mesh is the handle of the [MeshData] for ShapeMesh.
	Mesh asset.Handle

	// Size holds the parameters of primitive shapes.
	Size math32.Vector3
}

// MeshGeometry returns mesh geometry for the given handle.
func MeshGeometry(h asset.Handle) Geometry {
	return Geometry{Shape: ShapeMesh, Mesh: h}
}

// Points returns the bounding points of the geometry in its own frame,
// and false if it is a mesh that is not loaded yet.
func (gm *Geometry) Points(srv *asset.Server) ([]math32.Vector3, bool) {
	switch gm.Shape {
	case ShapeBox:
		h := gm.Size.MulScalar(0.5)
		return []math32.Vector3{h, h.Negate()}, true
	case ShapeCylinder:
		r, l := gm.Size.X, gm.Size.Y/2
		return []math32.Vector3{math32.Vec3(r, l, r), math32.Vec3(-r, -l, -r)}, true
	case ShapeSphere:
		r := gm.Size.X
		return []math32.Vector3{math32.Vector3Scalar(r), math32.Vector3Scalar(-r)}, true
	}
	md, ok := asset.Get[*MeshData](srv, gm.Mesh)
	if !ok {
		return nil, false
	}
	return md.Positions, true
}
