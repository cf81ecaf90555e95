// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"strings"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/base/metadata"
	"cogentcore.org/xyzasset/physics"
	"cogentcore.org/xyzasset/physics/collider"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
)

// ColliderKey is the primitive extras key naming its collider.
const ColliderKey = "collider"

// Decompose materializes the first node that has children as the
// single child of the requesting node.
func (md *Model) Decompose(dc *asset.DecomposeContext) (asset.Structure, error) {
	for _, nd := range md.Nodes {
		if len(nd.Children) > 0 {
			return asset.Children(asset.SplitPolicy{}, md.nodeBundle(nd)), nil
		}
	}
	dc.Logger.Warn("model has no node with children", "path", dc.Path.String())
	return asset.Children(asset.SplitPolicy{}), nil
}

// nodeBundle returns the bundle of a node that requests its contents.
func (md *Model) nodeBundle(nd *Node) asset.Bundle {
	b := asset.Bundle{nd.Pose(), NodeIndex(nd.index), asset.FromPath[*Node](nd.path)}
	if nd.Name == "" {
		return b
	}
	b = append(b, scene.Name(nd.Name))
	if bd, ok := md.Extensions.Bodies[nd.Name]; ok {
		kind, err := physics.ParseBodyKind(bd.Kind)
		if err == nil {
			b = append(b, physics.NewRigidBody(kind))
			if bd.Mass > 0 {
				b = append(b, physics.Mass{Mass: bd.Mass})
			}
		}
	}
	if kw, ok := md.Extensions.Colliders[nd.Name]; ok {
		if kind, ok := collider.ParseKind(kw); ok {
			b = append(b, collider.Request{Shape: kind})
		}
	}
	return b
}

// Decompose creates one node per child, and one for the mesh of the
// node if it has one.
func (nd *Node) Decompose(dc *asset.DecomposeContext) (asset.Structure, error) {
	md := nd.model
	var bs []asset.Bundle
	for _, c := range nd.Children {
		bs = append(bs, md.nodeBundle(md.Nodes[c]))
	}
	if nd.Mesh != nil {
		ms := md.Meshes[*nd.Mesh]
		bs = append(bs, asset.Bundle{scene.NewPose(), asset.FromPath[*Mesh](ms.path)})
	}
	return asset.Children(asset.SplitPolicy{}, bs...), nil
}

// Decompose creates a node for the primitive of the mesh. Meshes with
// several primitives are not supported and produce no nodes.
func (ms *Mesh) Decompose(dc *asset.DecomposeContext) (asset.Structure, error) {
	if len(ms.Primitives) != 1 {
		dc.Logger.Warn("mesh must have exactly one primitive", "path", dc.Path.String(), "mesh", ms.Name, "primitives", len(ms.Primitives))
		return asset.Children(asset.SplitPolicy{}), nil
	}
	pp := dc.Path.File().WithLabel(PrimitiveLabel(ms.index, 0))
	return asset.Children(asset.SplitPolicy{}, asset.Bundle{scene.NewPose(), asset.FromPath[*Primitive](pp)}), nil
}

// Decompose puts the geometry, material and collider request of the
// primitive on the requesting node.
func (pr *Primitive) Decompose(dc *asset.DecomposeContext) (asset.Structure, error) {
	b := asset.Bundle{xyz.MeshGeometry(pr.geometry)}
	if pr.Material != nil {
		b = append(b, pr.model.Materials[*pr.Material].XYZ())
	}
	b = append(b, collider.Request{Shape: colliderKind(dc, pr.Extras)})
	return asset.Root(b...), nil
}

// colliderKind matches the collider keyword of the extras, defaulting
// to convex.
func colliderKind(dc *asset.DecomposeContext, extras metadata.Data) collider.Kind {
	kw, err := metadata.GetFold[string](extras, ColliderKey)
	if err == nil {
		if kind, ok := collider.ParseKind(kw); ok {
			return kind
		}
	}
	args := []any{"path", dc.Path.String(), "keyword", kw, "valid", strings.Join(collider.Keywords(), ", ")}
	if sg := collider.Suggest(kw); sg != "" {
		args = append(args, "suggest", sg)
	}
	dc.Logger.Warn("no valid collider keyword in primitive extras, using convex", args...)
	return collider.Convex
}
