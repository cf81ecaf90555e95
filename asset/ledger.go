// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"slices"

	"cogentcore.org/xyzasset/scene"
)

// Ledger records, for each node that requested a document, every
// child node created for it across all materialization passes.
// It is append-only for the lifetime of the process.
type Ledger struct {
	children map[scene.NodeID][]scene.NodeID
}

// NewLedger returns a new empty ledger.
func NewLedger() *Ledger {
	return &Ledger{children: make(map[scene.NodeID][]scene.NodeID)}
}

// Append records that child was created for the given node.
func (ld *Ledger) Append(id, child scene.NodeID) {
	ld.children[id] = append(ld.children[id], child)
}

// Children returns a copy of the recorded children of the node.
func (ld *Ledger) Children(id scene.NodeID) []scene.NodeID {
	return slices.Clone(ld.children[id])
}

// Len returns the number of recorded children of the node.
func (ld *Ledger) Len(id scene.NodeID) int {
	return len(ld.children[id])
}
