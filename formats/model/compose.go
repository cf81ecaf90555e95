// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"

	"cogentcore.org/xyzasset/assembly"
	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/physics"
	"cogentcore.org/xyzasset/physics/collider"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
)

// ComposeParams are the parameters of composing a model.
type ComposeParams struct {

	// SceneName is the name of the scene and of its root node.
	SceneName string

	// Generator is recorded in the file info.
	Generator string
}

var errEmpty = errors.New("model: no nodes selected")

func (JSON) Compose(env *assembly.Env, selected []scene.NodeID, params ComposeParams) (asset.Document, error) {
	return composeDoc(env, selected, params)
}

func (Binary) Compose(env *assembly.Env, selected []scene.NodeID, params ComposeParams) (asset.Document, error) {
	return composeDoc(env, selected, params)
}

func composeDoc(env *assembly.Env, selected []scene.NodeID, params ComposeParams) (asset.Document, error) {
	md, err := Compose(env, selected, params)
	if err != nil {
		return nil, err
	}
	return md, nil
}

// Compose builds a flat model: a root node with one child per
// selected node, carrying its placement, geometry, material and
// physics properties.
func Compose(env *assembly.Env, selected []scene.NodeID, params ComposeParams) (*Model, error) {
	w := env.World
	md := &Model{Asset: Info{Version: Version, Generator: params.Generator}, Scene: params.SceneName}
	root := &Node{Name: params.SceneName}
	root.SetPose(scene.NewPose())
	md.Nodes = append(md.Nodes, root)
	names := map[string]bool{params.SceneName: true}
	mats := map[string]int{}
	for _, id := range selected {
		if !w.Alive(id) {
			continue
		}
		nd := &Node{Name: uniqueName(names, scene.NameOf(w, id), id)}
		if ps, ok := scene.Get[scene.Pose](w, id); ok {
			nd.SetPose(*ps)
		} else {
			nd.SetPose(scene.NewPose())
		}
		if gm, ok := scene.Get[xyz.Geometry](w, id); ok {
			if pr := md.composePrimitive(env, id, gm, mats); pr != nil {
				mi := len(md.Meshes)
				md.Meshes = append(md.Meshes, &Mesh{Name: nd.Name, Primitives: []*Primitive{pr}})
				nd.Mesh = &mi
			}
		}
		if rb, ok := scene.Get[physics.RigidBody](w, id); ok {
			bd := Body{Kind: rb.Kind.String()}
			if ms, ok := scene.Get[physics.Mass](w, id); ok {
				bd.Mass = ms.Mass
			}
			if md.Extensions.Bodies == nil {
				md.Extensions.Bodies = map[string]Body{}
			}
			md.Extensions.Bodies[nd.Name] = bd
		}
		root.Children = append(root.Children, len(md.Nodes))
		md.Nodes = append(md.Nodes, nd)
	}
	if len(root.Children) == 0 {
		return nil, errEmpty
	}
	return md, nil
}

func (md *Model) composePrimitive(env *assembly.Env, id scene.NodeID, gm *xyz.Geometry, mats map[string]int) *Primitive {
	w := env.World
	pts, ok := gm.Points(env.Server)
	if !ok {
		env.Logger.Warn("geometry not loaded, leaving it out", "node", id, "name", scene.NameOf(w, id))
		return nil
	}
	pr := &Primitive{}
	for _, p := range pts {
		pr.Positions = append(pr.Positions, [3]float32{p.X, p.Y, p.Z})
	}
	if gm.Shape == xyz.ShapeMesh {
		if mdt, ok := asset.Get[*xyz.MeshData](env.Server, gm.Mesh); ok {
			pr.Indices = mdt.Indexes
		}
	}
	if mt, ok := scene.Get[xyz.Material](w, id); ok {
		mi, ok := mats[mt.Name]
		if !ok || mt.Name == "" {
			mi = len(md.Materials)
			md.Materials = append(md.Materials, MaterialFrom(*mt))
			mats[mt.Name] = mi
		}
		pr.Material = &mi
	}
	if cl, ok := scene.Get[collider.Collider](w, id); ok {
		pr.Extras.Set(ColliderKey, cl.Shape.String())
	} else if rq, ok := scene.Get[collider.Request](w, id); ok {
		pr.Extras.Set(ColliderKey, rq.Shape.String())
	}
	return pr
}

func uniqueName(names map[string]bool, name string, id scene.NodeID) string {
	if name == "" {
		name = fmt.Sprintf("node%d", id)
	}
	nm := name
	for i := 1; names[nm]; i++ {
		nm = fmt.Sprintf("%s_%d", name, i)
	}
	names[nm] = true
	return nm
}

// check that both formats can be used for assembly
var (
	_ assembly.Composer[ComposeParams] = JSON{}
	_ assembly.Composer[ComposeParams] = Binary{}
)
