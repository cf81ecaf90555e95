// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collider derives collision shapes for nodes from the
// vertex positions of their geometry.
package collider

import (
	"fmt"
	"strings"

	"cogentcore.org/xyzasset/math32"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Kind is the kind of collision shape.
type Kind int32

const (
	// Cuboid is a box given by its half extents.
	Cuboid Kind = iota

	// Wheel is a round shape given by its radius.
	Wheel

	// Sphere is a sphere given by its radius.
	Sphere

	// Convex is the convex hull of the vertex positions.
	Convex

	// KindsN is the number of kinds.
	KindsN
)

var kindNames = [KindsN]string{"cuboid", "wheel", "sphere", "convex"}

func (k Kind) String() string {
	if k >= 0 && k < KindsN {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Keywords returns the keywords of all kinds.
func Keywords() []string {
	return kindNames[:]
}

// ParseKind matches a keyword to a kind, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	for i, nm := range kindNames {
		if strings.EqualFold(s, nm) {
			return Kind(i), true
		}
	}
	return Convex, false
}

// Suggest returns the keyword most similar to s, for messages about
// an unknown keyword, or "" if none is similar enough.
func Suggest(s string) string {
	lv := metrics.NewLevenshtein()
	lv.CaseSensitive = false
	best, bestSim := "", 0.5
	for _, nm := range kindNames {
		if sim := strutil.Similarity(s, nm, lv); sim >= bestSim {
			best, bestSim = nm, sim
		}
	}
	return best
}

// Request asks for a collider of the given kind to be derived from
// the geometry of the node and its subtree. It is removed once the
// [Collider] exists.
type Request struct {
	Shape Kind
}

// Collider is a concrete collision shape.
type Collider struct {
	Shape Kind

	// HalfExtents are the half extents of a Cuboid.
	HalfExtents math32.Vector3

	// Radius is the radius of a Wheel or Sphere.
	Radius float32

	// Hull is the hull of a Convex.
	Hull *Hull
}

// Extents are the farthest positive and negative signed values of a
// point cloud per axis. Both start at zero, so a cloud that lies in
// the positive octant keeps a zero negative extent.
type Extents struct {
	Pos math32.Vector3
	Neg math32.Vector3
}

// Add extends the extents by the given points.
func (ex *Extents) Add(pts ...math32.Vector3) {
	for _, p := range pts {
		ex.Pos.SetMax(p)
		ex.Neg.SetMin(p)
	}
}

// HalfExtents returns the cuboid half extent per axis, which is the
// sum of the magnitudes of the negative and positive extents.
func (ex *Extents) HalfExtents() math32.Vector3 {
	return ex.Neg.Abs().Add(ex.Pos)
}

// Radius returns the largest magnitude of the six signed extents.
func (ex *Extents) Radius() float32 {
	return math32.Max(ex.Pos.MaxAbsComponent(), ex.Neg.MaxAbsComponent())
}

// Approximate returns a collider of the given kind for the points.
// Convex shapes are built by hb.
func Approximate(kind Kind, pts []math32.Vector3, hb HullBuilder) (Collider, error) {
	cl := Collider{Shape: kind}
	if kind == Convex {
		h, err := hb.BuildHull(pts)
		if err != nil {
			return cl, err
		}
		cl.Hull = h
		return cl, nil
	}
	var ex Extents
	ex.Add(pts...)
	switch kind {
	case Cuboid:
		cl.HalfExtents = ex.HalfExtents()
	case Wheel, Sphere:
		cl.Radius = ex.Radius()
	default:
		return cl, fmt.Errorf("collider: invalid kind %v", kind)
	}
	return cl, nil
}
