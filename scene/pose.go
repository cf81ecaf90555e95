// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/xyzasset/math32"
)

// Pose is the local placement of a node relative to its parent:
// position, rotation and scale.
type Pose struct {

	// position of center of element (relative to parent)
	Pos math32.Vector3

	// scale (relative to parent)
	Scale math32.Vector3

	// Node rotation specified as a Quat (relative to parent)
	Quat math32.Quat
}

// NewPose returns an identity pose.
func NewPose() Pose {
	ps := Pose{}
	ps.Defaults()
	return ps
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// Compose returns the pose of a child with local pose ch placed
// under this pose.
func (ps Pose) Compose(ch Pose) Pose {
	ps.Defaults()
	ch.Defaults()
	sc := math32.Vec3(ch.Pos.X*ps.Scale.X, ch.Pos.Y*ps.Scale.Y, ch.Pos.Z*ps.Scale.Z)
	return Pose{
		Pos:   sc.MulQuat(ps.Quat).Add(ps.Pos),
		Scale: math32.Vec3(ps.Scale.X*ch.Scale.X, ps.Scale.Y*ch.Scale.Y, ps.Scale.Z*ch.Scale.Z),
		Quat:  ps.Quat.Mul(ch.Quat),
	}
}

func (ps Pose) String() string {
	return fmt.Sprintf("Pos: %v Quat: %v Scale: %v", ps.Pos, ps.Quat, ps.Scale)
}
