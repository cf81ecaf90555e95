// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model is the model container format: a scene of nodes with
// meshes and materials, stored as JSON (.model) or CBOR (.modelb).
// Nodes, meshes and primitives are also sub-assets of the file,
// labeled NodeN, MeshN, MeshN/PrimitiveM and MeshN/PrimitiveM/Geometry.
package model

import (
	"fmt"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/base/metadata"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
)

// Extension keys of the physics table.
const (
	ExtBodies    = "XYZ_physics_bodies"
	ExtColliders = "XYZ_physics_colliders"
)

// Info describes the file.
type Info struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// Model is the container document.
type Model struct {
	Asset      Info       `json:"asset"`
	Scene      string     `json:"scene,omitempty"`
	Nodes      []*Node    `json:"nodes,omitempty"`
	Meshes     []*Mesh    `json:"meshes,omitempty"`
	Materials  []Material `json:"materials,omitempty"`
	Extensions Extensions `json:"extensions,omitzero"`
}

// Extensions is the auxiliary extension block.
type Extensions struct {

	// Bodies are rigid bodies by node name.
	Bodies map[string]Body `json:"XYZ_physics_bodies,omitempty"`

	// Colliders are collider keywords by node name.
	Colliders map[string]string `json:"XYZ_physics_colliders,omitempty"`
}

// Body is a rigid body entry of the physics table.
type Body struct {
	Kind string  `json:"kind"`
	Mass float32 `json:"mass,omitempty"`
}

// Node is a node of the hierarchy. Children are node indexes.
type Node struct {
	Name        string        `json:"name,omitempty"`
	Translation [3]float32    `json:"translation"`
	Rotation    [4]float32    `json:"rotation"`
	Scale       [3]float32    `json:"scale"`
	Mesh        *int          `json:"mesh,omitempty"`
	Children    []int         `json:"children,omitempty"`
	Extras      metadata.Data `json:"extras,omitempty"`

	index int
	path  asset.Path
	model *Model
}

// Mesh is a mesh made of primitives.
type Mesh struct {
	Name       string       `json:"name,omitempty"`
	Primitives []*Primitive `json:"primitives"`

	index int
	path  asset.Path
	model *Model
}

// Primitive is one drawable part of a mesh.
type Primitive struct {
	Positions [][3]float32  `json:"positions"`
	Indices   []uint32      `json:"indices,omitempty"`
	Material  *int          `json:"material,omitempty"`
	Extras    metadata.Data `json:"extras,omitempty"`

	geometry asset.Handle
	model    *Model
}

// Material is a surface material with 0-1 color components.
type Material struct {
	Name     string     `json:"name,omitempty"`
	Color    [4]float32 `json:"color"`
	Emissive [4]float32 `json:"emissive,omitzero"`
	Shiny    float32    `json:"shiny,omitempty"`
}

// NodeIndex tags a node with the index of the model node it came from.
type NodeIndex int

// Pose returns the local placement of the node.
func (nd *Node) Pose() scene.Pose {
	ps := scene.Pose{
		Pos:   math32.Vec3(nd.Translation[0], nd.Translation[1], nd.Translation[2]),
		Scale: math32.Vec3(nd.Scale[0], nd.Scale[1], nd.Scale[2]),
		Quat:  math32.NewQuat(nd.Rotation[0], nd.Rotation[1], nd.Rotation[2], nd.Rotation[3]),
	}
	ps.Defaults()
	return ps
}

// SetPose sets the placement of the node.
func (nd *Node) SetPose(ps scene.Pose) {
	ps.Defaults()
	nd.Translation = [3]float32{ps.Pos.X, ps.Pos.Y, ps.Pos.Z}
	nd.Rotation = [4]float32{ps.Quat.X, ps.Quat.Y, ps.Quat.Z, ps.Quat.W}
	nd.Scale = [3]float32{ps.Scale.X, ps.Scale.Y, ps.Scale.Z}
}

// XYZ returns the material as a surface material.
func (mt *Material) XYZ() xyz.Material {
	m := xyz.NewMaterial(mt.Name, xyz.RGBAFromFloats(mt.Color[0], mt.Color[1], mt.Color[2], mt.Color[3]))
	m.Emissive = xyz.RGBAFromFloats(mt.Emissive[0], mt.Emissive[1], mt.Emissive[2], mt.Emissive[3])
	if mt.Shiny > 0 {
		m.Shiny = mt.Shiny
	}
	return m
}

// MaterialFrom returns the model material for a surface material.
func MaterialFrom(m xyz.Material) Material {
	return Material{Name: m.Name, Color: xyz.Floats(m.Color), Emissive: xyz.Floats(m.Emissive), Shiny: m.Shiny}
}

// NodeLabel is the sub-asset label of node i.
func NodeLabel(i int) string { return fmt.Sprintf("Node%d", i) }

// MeshLabel is the sub-asset label of mesh i.
func MeshLabel(i int) string { return fmt.Sprintf("Mesh%d", i) }

// PrimitiveLabel is the sub-asset label of primitive j of mesh i.
func PrimitiveLabel(i, j int) string { return fmt.Sprintf("Mesh%d/Primitive%d", i, j) }

// GeometryLabel is the sub-asset label of the geometry of primitive j
// of mesh i.
func GeometryLabel(i, j int) string { return PrimitiveLabel(i, j) + "/Geometry" }

// link validates the indexes of the model and links its parts to it
// and to their sub-asset paths, registering those on the load context.
func (md *Model) link(lc *asset.LoadContext) error {
	for i, nd := range md.Nodes {
		if nd == nil {
			return fmt.Errorf("node %d is null", i)
		}
		if nd.Mesh != nil && (*nd.Mesh < 0 || *nd.Mesh >= len(md.Meshes)) {
			return fmt.Errorf("node %d: mesh index %d out of range", i, *nd.Mesh)
		}
		for _, c := range nd.Children {
			if c < 0 || c >= len(md.Nodes) || c == i {
				return fmt.Errorf("node %d: child index %d out of range", i, c)
			}
		}
	}
	if err := md.checkCycles(); err != nil {
		return err
	}
	for i, ms := range md.Meshes {
		if ms == nil {
			return fmt.Errorf("mesh %d is null", i)
		}
		ms.index, ms.model = i, md
		ms.path = lc.AddLabeled(MeshLabel(i), ms).Path()
		for j, pr := range ms.Primitives {
			if pr == nil {
				return fmt.Errorf("mesh %d: primitive %d is null", i, j)
			}
			if pr.Material != nil && (*pr.Material < 0 || *pr.Material >= len(md.Materials)) {
				return fmt.Errorf("mesh %d: primitive %d: material index %d out of range", i, j, *pr.Material)
			}
			pr.model = md
			lc.AddLabeled(PrimitiveLabel(i, j), pr)
			pr.geometry = lc.AddLabeled(GeometryLabel(i, j), pr.meshData(fmt.Sprintf("%s/%d", ms.Name, j)))
		}
	}
	for i, nd := range md.Nodes {
		nd.index, nd.model = i, md
		nd.path = lc.AddLabeled(NodeLabel(i), nd).Path()
	}
	return nil
}

func (pr *Primitive) meshData(name string) *xyz.MeshData {
	md := &xyz.MeshData{Name: name, Indexes: pr.Indices}
	md.Positions = make([]math32.Vector3, len(pr.Positions))
	for i, p := range pr.Positions {
		md.Positions[i] = math32.Vec3(p[0], p[1], p[2])
	}
	return md
}

func (md *Model) checkCycles() error {
	const (
		unseen = iota
		visiting
		done
	)
	state := make([]int, len(md.Nodes))
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return fmt.Errorf("node %d is its own ancestor", i)
		case done:
			return nil
		}
		state[i] = visiting
		for _, c := range md.Nodes[i].Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}
	for i := range md.Nodes {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}
