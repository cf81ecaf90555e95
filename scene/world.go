// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the node arena that the asset pipeline
// populates: nodes are integer ids with an optional parent id and any
// number of typed capability components. Mutation during a tick goes
// through [Commands], which are applied once per tick by [Schedule].
package scene

import (
	"fmt"
	"reflect"
	"slices"
)

// NodeID identifies a node in a [World]. The zero value is never a
// valid node.
type NodeID uint64

// node is the arena entry for a live node. Children are kept in
// insertion order; there are no back-pointers other than parent ids.
type node struct {
	parent   NodeID
	children []NodeID
}

// World is the arena of nodes and their components.
// It is not safe for concurrent use: all access happens on the tick.
type World struct {

	// last allocated id; ids are never reused.
	lastID NodeID

	nodes map[NodeID]*node

	// stores holds one component map per component type,
	// with values stored as pointers to the component type.
	stores map[reflect.Type]map[NodeID]any

	cmds Commands
}

// NewWorld returns a new empty world.
func NewWorld() *World {
	w := &World{
		nodes:  make(map[NodeID]*node),
		stores: make(map[reflect.Type]map[NodeID]any),
	}
	w.cmds.w = w
	return w
}

// Commands returns the deferred command queue of the world.
func (w *World) Commands() *Commands {
	return &w.cmds
}

// reserve allocates a new id without making the node live.
func (w *World) reserve() NodeID {
	w.lastID++
	return w.lastID
}

// Spawn creates a live node with the given components immediately.
// Systems running inside a tick should use [Commands.Spawn] instead.
func (w *World) Spawn(bundle ...any) NodeID {
	id := w.reserve()
	w.spawnReserved(id, bundle)
	return id
}

func (w *World) spawnReserved(id NodeID, bundle []any) {
	w.nodes[id] = &node{}
	w.Insert(id, bundle...)
}

// Alive returns whether the given node exists.
func (w *World) Alive(id NodeID) bool {
	_, ok := w.nodes[id]
	return ok
}

// Len returns the number of live nodes.
func (w *World) Len() int {
	return len(w.nodes)
}

// IDs returns all live node ids in ascending order.
func (w *World) IDs() []NodeID {
	ids := make([]NodeID, 0, len(w.nodes))
	for id := range w.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Parent returns the parent of the given node, and false if it has none.
func (w *World) Parent(id NodeID) (NodeID, bool) {
	n, ok := w.nodes[id]
	if !ok || n.parent == 0 {
		return 0, false
	}
	return n.parent, true
}

// Children returns a copy of the children of the given node, in the
// order they were added.
func (w *World) Children(id NodeID) []NodeID {
	n, ok := w.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// SetParent makes child a child of parent, detaching it from any
// previous parent. Adding an edge that would create a cycle panics.
func (w *World) SetParent(child, parent NodeID) {
	cn := w.mustNode(child)
	pn := w.mustNode(parent)
	if cn.parent == parent {
		return
	}
	for p := parent; p != 0; p = w.nodes[p].parent {
		if p == child {
			panic(fmt.Sprintf("scene.World.SetParent: node %d is an ancestor of %d", child, parent))
		}
	}
	w.detach(child)
	cn.parent = parent
	pn.children = append(pn.children, child)
}

func (w *World) detach(child NodeID) {
	cn := w.nodes[child]
	if cn.parent == 0 {
		return
	}
	if pn, ok := w.nodes[cn.parent]; ok {
		pn.children = slices.DeleteFunc(pn.children, func(c NodeID) bool { return c == child })
	}
	cn.parent = 0
}

// Despawn removes the given node and its whole subtree.
func (w *World) Despawn(id NodeID) {
	n, ok := w.nodes[id]
	if !ok {
		return
	}
	for _, c := range slices.Clone(n.children) {
		w.Despawn(c)
	}
	w.detach(id)
	for _, st := range w.stores {
		delete(st, id)
	}
	delete(w.nodes, id)
}

// WalkDown calls fun on the given node and then on each of its
// descendants, depth first. If fun returns false the children of
// that node are skipped.
func (w *World) WalkDown(id NodeID, fun func(id NodeID) bool) {
	if !w.Alive(id) {
		return
	}
	if !fun(id) {
		return
	}
	for _, c := range w.nodes[id].children {
		w.WalkDown(c, fun)
	}
}

func (w *World) mustNode(id NodeID) *node {
	n, ok := w.nodes[id]
	if !ok {
		panic(fmt.Sprintf("scene.World: node %d does not exist", id))
	}
	return n
}
