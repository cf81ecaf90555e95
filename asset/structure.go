// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"cogentcore.org/xyzasset/scene"
)

// Bundle is a set of components to put on one node.
type Bundle []any

// Pose returns the pose in the bundle and its index, or -1.
func (b Bundle) Pose() (scene.Pose, int) {
	for i, c := range b {
		if ps, ok := c.(scene.Pose); ok {
			return ps, i
		}
	}
	return scene.Pose{}, -1
}

// WithPose returns the bundle with its pose replaced or added.
func (b Bundle) WithPose(ps scene.Pose) Bundle {
	if _, i := b.Pose(); i >= 0 {
		b[i] = ps
		return b
	}
	return append(b, ps)
}

// SplitPolicy determines how decomposed children relate to the node
// that requested the document.
type SplitPolicy struct {

	// Separate children are independent roots with no parent edge.
	Separate bool

	// InheritTransform seeds the placement of separate children from the
	// current placement of the requesting node. It is a one-time copy.
	InheritTransform bool
}

// Structure is the result of decomposing a document: either a bundle
// for the requesting node itself, or a list of bundles for new nodes.
type Structure struct {

	// Root is the bundle for the requesting node when IsRoot is set.
	Root Bundle

	// IsRoot selects the Root form.
	IsRoot bool

	// Children are the bundles for new nodes in the Children form.
	Children []Bundle

	// Split is the policy for the Children form.
	Split SplitPolicy
}

// Root returns a structure that attaches the bundle to the requesting node.
func Root(b ...any) Structure {
	return Structure{Root: b, IsRoot: true}
}

// Children returns a structure that creates one node per bundle.
func Children(split SplitPolicy, bundles ...Bundle) Structure {
	return Structure{Children: bundles, Split: split}
}
