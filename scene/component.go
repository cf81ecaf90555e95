// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"reflect"
	"slices"
)

// Insert adds the given components to the node, replacing any existing
// components of the same types. Components are keyed by their dynamic
// type, so they should be passed by value.
func (w *World) Insert(id NodeID, comps ...any) {
	w.mustNode(id)
	for _, c := range comps {
		if c == nil {
			continue
		}
		v := reflect.ValueOf(c)
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		w.store(v.Type())[id] = p.Interface()
	}
}

func (w *World) store(t reflect.Type) map[NodeID]any {
	st, ok := w.stores[t]
	if !ok {
		st = make(map[NodeID]any)
		w.stores[t] = st
	}
	return st
}

// RemoveType removes the component of the given type from the node.
func (w *World) RemoveType(id NodeID, t reflect.Type) {
	if st, ok := w.stores[t]; ok {
		delete(st, id)
	}
}

// HasType returns whether the node has a component of the given type.
func (w *World) HasType(id NodeID, t reflect.Type) bool {
	st, ok := w.stores[t]
	if !ok {
		return false
	}
	_, has := st[id]
	return has
}

// Components returns pointers to all components of the node.
// The order is unspecified.
func (w *World) Components(id NodeID) []any {
	var cs []any
	for _, st := range w.stores {
		if c, ok := st[id]; ok {
			cs = append(cs, c)
		}
	}
	return cs
}

// Add sets the component of type T on the node.
func Add[T any](w *World, id NodeID, v T) {
	w.mustNode(id)
	w.store(reflect.TypeFor[T]())[id] = &v
}

// Get returns a pointer to the component of type T on the node,
// which may be modified in place.
func Get[T any](w *World, id NodeID) (*T, bool) {
	st, ok := w.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	c, ok := st[id]
	if !ok {
		return nil, false
	}
	return c.(*T), true
}

// Has returns whether the node has a component of type T.
func Has[T any](w *World, id NodeID) bool {
	return w.HasType(id, reflect.TypeFor[T]())
}

// Delete removes the component of type T from the node.
func Delete[T any](w *World, id NodeID) {
	w.RemoveType(id, reflect.TypeFor[T]())
}

// With returns the ids of all nodes that have a component of type T,
// in ascending order.
func With[T any](w *World) []NodeID {
	st := w.stores[reflect.TypeFor[T]()]
	ids := make([]NodeID, 0, len(st))
	for id := range st {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Each calls fun for every node with a component of type T, in
// ascending id order. The set of nodes is fixed when Each starts.
func Each[T any](w *World, fun func(id NodeID, v *T)) {
	for _, id := range With[T](w) {
		if v, ok := Get[T](w, id); ok {
			fun(id, v)
		}
	}
}

// Count returns the number of nodes with a component of type T.
func Count[T any](w *World) int {
	return len(w.stores[reflect.TypeFor[T]()])
}
