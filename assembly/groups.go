// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"slices"

	"cogentcore.org/xyzasset/base/ordmap"
	"cogentcore.org/xyzasset/scene"
)

// Groups are named sets of nodes selected for assembly. A group only
// grows until an assembly consumes it.
type Groups struct {
	sets ordmap.Map[string, map[scene.NodeID]struct{}]
}

// Add adds the nodes to the named group.
func (gs *Groups) Add(name string, ids ...scene.NodeID) {
	set, ok := gs.sets.ValueByKeyTry(name)
	if !ok {
		set = make(map[scene.NodeID]struct{})
		gs.sets.Add(name, set)
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

// Len returns the number of nodes in the named group.
func (gs *Groups) Len(name string) int {
	set, _ := gs.sets.ValueByKeyTry(name)
	return len(set)
}

// Names returns the group names in order of creation.
func (gs *Groups) Names() []string {
	return gs.sets.Keys()
}

// members returns the sorted nodes of the named group.
func (gs *Groups) members(name string) []scene.NodeID {
	set, _ := gs.sets.ValueByKeyTry(name)
	ids := make([]scene.NodeID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// consume empties the named group.
func (gs *Groups) consume(name string) {
	if set, ok := gs.sets.ValueByKeyTry(name); ok {
		clear(set)
	}
}
