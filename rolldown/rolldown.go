// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rolldown propagates a component value from a node to the
// direct children that its document materializes under it.
package rolldown

import (
	"reflect"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/scene"
)

// Sentinels is a set of marker component types. Children carrying
// any of them keep their own value.
type Sentinels interface {
	Types() []reflect.Type
}

// None is the empty sentinel set.
type None struct{}

func (None) Types() []reflect.Type { return nil }

// Markers1 is the sentinel set of one marker type.
type Markers1[A any] struct{}

func (Markers1[A]) Types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A]()}
}

// Markers2 is the sentinel set of two marker types.
type Markers2[A, B any] struct{}

func (Markers2[A, B]) Types() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

// Tag rolls Value down to the direct children of its node once the
// document requested on the node has been materialized. A child gets
// the value if it has none of the sentinel markers S, or if it
// already has a value of type V. The tag is then removed.
type Tag[V any, S Sentinels] struct {
	Value V
}

// New returns a tag for the given value.
func New[S Sentinels, V any](v V) Tag[V, S] {
	return Tag[V, S]{Value: v}
}

// Install installs the checker for this tag type.
func (t Tag[V, S]) Install(rs *asset.Resolver) {
	Install[V, S](rs.Schedule, rs.Ledger)
}

// Install installs the checker for tags of type Tag[V, S] if it is not
// installed yet. It runs after materialization and waits until the
// ledger records live children for the node.
func Install[V any, S Sentinels](sc *scene.Schedule, ld *asset.Ledger) {
	sc.Ensure(scene.StagePropagate, reflect.TypeFor[Tag[V, S]](), func() scene.System {
		return func(w *scene.World) {
			propagate[V, S](w, ld)
		}
	})
}

func propagate[V any, S Sentinels](w *scene.World, ld *asset.Ledger) {
	var s S
	sentinels := s.Types()
	vt := reflect.TypeFor[V]()
	cmds := w.Commands()
	scene.Each(w, func(id scene.NodeID, tag *Tag[V, S]) {
		if !ready(w, ld, id) {
			return
		}
		for _, ch := range w.Children(id) {
			if eligible(w, ch, vt, sentinels) {
				cmds.Insert(ch, tag.Value)
			}
		}
		scene.RemoveLater[Tag[V, S]](cmds, id)
	})
}

func ready(w *scene.World, ld *asset.Ledger, id scene.NodeID) bool {
	led := ld.Children(id)
	if len(led) == 0 {
		return false
	}
	for _, c := range led {
		if !w.Alive(c) {
			return false
		}
	}
	return true
}

func eligible(w *scene.World, id scene.NodeID, vt reflect.Type, sentinels []reflect.Type) bool {
	if w.HasType(id, vt) {
		return true
	}
	for _, st := range sentinels {
		if w.HasType(id, st) {
			return false
		}
	}
	return true
}
