// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joint

import (
	"fmt"
	"strings"

	"cogentcore.org/xyzasset/base/errors"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/scene"
)

// Robot descriptions are Z-up with roll and pitch of opposite sense
// to the runtime, which is Y-up.
var (
	docToPos = math32.Matrix3FromRows([3]float32{1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0})
	docToRot = math32.Matrix3FromRows([3]float32{-1, 0, 0}, [3]float32{0, -1, 0}, [3]float32{0, 0, 1})
	posToDoc = errors.Must1(docToPos.Inverse())
	rotToDoc = errors.Must1(docToRot.Inverse())
)

// PoseFromOrigin converts a document origin, a translation and a
// roll-pitch-yaw rotation, to a runtime pose.
func PoseFromOrigin(xyz, rpy math32.Vector3) scene.Pose {
	ps := scene.NewPose()
	ps.Pos = xyz.MulMatrix3(&docToPos)
	ps.Quat = math32.NewQuatEuler(rpy.MulMatrix3(&docToRot))
	return ps
}

// OriginFromPose converts a runtime pose back to a document origin.
func OriginFromPose(ps scene.Pose) (xyz, rpy math32.Vector3) {
	ps.Defaults()
	xyz = ps.Pos.MulMatrix3(&posToDoc)
	rpy = ps.Quat.ToEuler().MulMatrix3(&rotToDoc)
	return
}

// AxisToRuntime converts a document direction to runtime coordinates.
func AxisToRuntime(v math32.Vector3) math32.Vector3 {
	return v.MulMatrix3(&docToPos)
}

// AxisToDoc converts a runtime direction to document coordinates.
func AxisToDoc(v math32.Vector3) math32.Vector3 {
	return v.MulMatrix3(&posToDoc)
}

// Kind is the type of a robot-description joint.
type Kind int32

const (
	Fixed Kind = iota
	Revolute
	Continuous
	Prismatic
	Floating
	Planar
	KindsN
)

var kindNames = [KindsN]string{"fixed", "revolute", "continuous", "prismatic", "floating", "planar"}

func (k Kind) String() string {
	if k >= 0 && k < KindsN {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// ParseKind parses a joint type name.
func ParseKind(s string) (Kind, error) {
	for i, nm := range kindNames {
		if strings.EqualFold(s, nm) {
			return Kind(i), nil
		}
	}
	return Fixed, fmt.Errorf("unknown joint type %q", s)
}

// Locked returns the locked axes of the kind.
func (k Kind) Locked() Axes {
	switch k {
	case Revolute, Continuous:
		return RevoluteLocked
	case Prismatic:
		return PrismaticLocked
	case Floating:
		return 0
	case Planar:
		return PlanarLocked
	}
	return AllLocked
}

// Params are the joint parameters of a robot description, in its
// own coordinate convention.
type Params struct {
	Kind Kind

	// XYZ and RPY are the origin of the joint in the parent link.
	XYZ math32.Vector3
	RPY math32.Vector3

	// Axis is the joint axis in the joint frame. Zero means X.
	Axis math32.Vector3

	HasLimit bool
	Lower    float32
	Upper    float32
	Effort   float32
	Velocity float32

	Damping  float32
	Friction float32
}

// FromParams converts robot-description joint parameters to a
// descriptor. The joint axis is aligned with the X axis of both local
// frames, so single-axis joints move along X or AngX.
func FromParams(p Params) Descriptor {
	d := NewDescriptor(p.Kind.Locked())
	origin := PoseFromOrigin(p.XYZ, p.RPY)
	axis := p.Axis
	if axis == (math32.Vector3{}) {
		axis = math32.Vec3(1, 0, 0)
	}
	var align math32.Quat
	align.SetFromUnitVectors(math32.Vec3(1, 0, 0), AxisToRuntime(axis).Normal())
	d.LocalFrame1.Pos = origin.Pos
	d.LocalFrame1.Quat = origin.Quat.Mul(align)
	d.LocalFrame2.Quat = align

	free := -1
	switch p.Kind {
	case Revolute, Continuous:
		free = AxisAngX
	case Prismatic:
		free = AxisX
	}
	if free < 0 {
		return d
	}
	if p.HasLimit && p.Kind != Continuous {
		d.SetLimits(free, p.Lower, p.Upper)
	}
	if p.Effort > 0 || p.Damping > 0 {
		m := d.Motors[free]
		if p.Effort > 0 {
			m.MaxForce = p.Effort
		}
		m.Damping = p.Damping
		d.SetMotor(free, m)
	}
	return d
}

// ToParams converts a descriptor back to robot-description joint
// parameters. The limit fields are taken from the AngX slot, the
// canonical single-axis reference, and the effort and velocity, which
// descriptors do not bound, are clamped to the largest finite value.
func ToParams(d Descriptor) Params {
	p := Params{Kind: kindOf(d)}
	p.Axis = AxisToDoc(math32.Vec3(1, 0, 0).MulQuat(d.LocalFrame2.Quat))
	origin := d.LocalFrame1
	origin.Quat = d.LocalFrame1.Quat.Mul(d.LocalFrame2.Quat.Conjugate())
	p.XYZ, p.RPY = OriginFromPose(origin)

	lm := d.Limits[AxisAngX]
	mt := d.Motors[AxisAngX]
	p.HasLimit = d.Limited.Has(AngX)
	if p.HasLimit {
		p.Lower = lm.Min
		p.Upper = lm.Max
	}
	p.Effort = math32.ClampFinite(mt.MaxForce)
	p.Velocity = math32.MaxFloat32
	p.Damping = mt.Damping
	return p
}

func kindOf(d Descriptor) Kind {
	switch d.Locked {
	case AllLocked:
		return Fixed
	case RevoluteLocked:
		if d.Limited.Has(AngX) {
			return Revolute
		}
		return Continuous
	case PrismaticLocked:
		return Prismatic
	case PlanarLocked:
		return Planar
	}
	return Floating
}
