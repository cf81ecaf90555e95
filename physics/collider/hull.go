// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collider

import (
	"errors"
	"slices"

	"cogentcore.org/xyzasset/math32"
)

// Hull is a convex shape given by the points it encloses.
type Hull struct {
	Points []math32.Vector3
	BBox   math32.Box3
}

// HullBuilder builds convex hulls. Physics backends provide one that
// computes a proper hull.
type HullBuilder interface {
	BuildHull(pts []math32.Vector3) (*Hull, error)
}

// PointCloud is the default [HullBuilder]: it keeps the distinct
// points and their bounding box, leaving the hull computation to the
// physics backend that consumes it.
type PointCloud struct{}

var errNoPoints = errors.New("collider: no points for convex hull")

func (PointCloud) BuildHull(pts []math32.Vector3) (*Hull, error) {
	if len(pts) == 0 {
		return nil, errNoPoints
	}
	ps := slices.Clone(pts)
	slices.SortFunc(ps, func(a, b math32.Vector3) int {
		for d := range 3 {
			av, bv := a.Dim(d), b.Dim(d)
			if av < bv {
				return -1
			}
			if av > bv {
				return 1
			}
		}
		return 0
	})
	ps = slices.Compact(ps)
	h := &Hull{Points: ps}
	h.BBox.SetFromPoints(ps)
	return h, nil
}
