// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Name is the name of a node, as given by the document it came from.
type Name string

// Group tags nodes that were decomposed from the same document, so
// that names only need to be unique within a group.
type Group string

// NameOf returns the name of the node, or "" if it has none.
func NameOf(w *World, id NodeID) string {
	if nm, ok := Get[Name](w, id); ok {
		return string(*nm)
	}
	return ""
}

// GroupOf returns the group of the node and whether it has one.
func GroupOf(w *World, id NodeID) (Group, bool) {
	if gp, ok := Get[Group](w, id); ok {
		return *gp, true
	}
	return "", false
}
