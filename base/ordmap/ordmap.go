// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordmap implements a map that keeps its keys in the order
// they were first added. The pipeline uses it wherever iteration must
// be deterministic: systems run in installation order, and sources,
// formats and labeled sub-assets are listed in registration order.
// The zero value is ready to use.
package ordmap

// KeyValue is one entry of a [Map].
type KeyValue[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an ordered map: a slice of entries plus an index by key.
type Map[K comparable, V any] struct {

	// Order is the entries in the order their keys were first added.
	Order []KeyValue[K, V]

	// Map is the index of each key in Order.
	Map map[K]int
}

// Add sets the value for key. A new key goes to the end; an existing
// key keeps its position.
func (om *Map[K, V]) Add(key K, val V) {
	if idx, has := om.Map[key]; has {
		om.Order[idx].Value = val
		return
	}
	if om.Map == nil {
		om.Map = make(map[K]int)
	}
	om.Map[key] = len(om.Order)
	om.Order = append(om.Order, KeyValue[K, V]{Key: key, Value: val})
}

// ValueByKeyTry returns the value for key and whether it is present.
func (om *Map[K, V]) ValueByKeyTry(key K) (V, bool) {
	if idx, ok := om.Map[key]; ok {
		return om.Order[idx].Value, true
	}
	var zv V
	return zv, false
}

// Len returns the number of entries; it is 0 for a nil map.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.Order)
}

// Keys returns the keys in order.
func (om *Map[K, V]) Keys() []K {
	kl := make([]K, om.Len())
	for i, kv := range om.Order {
		kl[i] = kv.Key
	}
	return kl
}

// Values returns the values in order.
func (om *Map[K, V]) Values() []V {
	vl := make([]V, om.Len())
	for i, kv := range om.Order {
		vl[i] = kv.Value
	}
	return vl
}
