// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Box3 is an axis-aligned bounding box given by its minimum and
// maximum corners.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3Empty returns a box that contains no points: its minimum is
// +Infinity and its maximum -Infinity on every axis.
func B3Empty() Box3 {
	return Box3{Min: Vector3Scalar(Infinity), Max: Vector3Scalar(-Infinity)}
}

// IsEmpty returns whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// SetFromPoints sets the box to the bounds of the points; it is empty
// if there are none.
func (b *Box3) SetFromPoints(points []Vector3) {
	*b = B3Empty()
	for _, p := range points {
		b.Min.SetMin(p)
		b.Max.SetMax(p)
	}
}

// Size returns the extent of the box on each axis.
func (b Box3) Size() Vector3 {
	return b.Max.Sub(b.Min)
}
