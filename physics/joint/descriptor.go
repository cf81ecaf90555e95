// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package joint has the six-axis joint descriptor, its conversion
// from and to robot-description joint parameters, and the binder that
// resolves joint parents by name.
package joint

import (
	"fmt"
	"strings"

	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/scene"
)

// Axes is a bit set of the six joint axes.
type Axes uint8

const (
	X Axes = 1 << iota
	Y
	Z
	AngX
	AngY
	AngZ
)

// AxesN is the number of joint axes.
const AxesN = 6

// Axis indexes into [Descriptor.Limits] and [Descriptor.Motors].
const (
	AxisX = iota
	AxisY
	AxisZ
	AxisAngX
	AxisAngY
	AxisAngZ
)

// Locked axis presets.
const (
	AllLocked       = X | Y | Z | AngX | AngY | AngZ
	SphericalLocked = X | Y | Z
	RevoluteLocked  = X | Y | Z | AngY | AngZ
	PrismaticLocked = Y | Z | AngX | AngY | AngZ
	PlanarLocked    = X | AngY | AngZ
)

var axisNames = [AxesN]string{"X", "Y", "Z", "AngX", "AngY", "AngZ"}

// Has returns whether all of the given axes are set.
func (a Axes) Has(b Axes) bool {
	return a&b == b
}

// Free returns the axes not in the set.
func (a Axes) Free() Axes {
	return AllLocked &^ a
}

func (a Axes) String() string {
	var s []string
	for i, nm := range axisNames {
		if a&(1<<i) != 0 {
			s = append(s, nm)
		}
	}
	return strings.Join(s, "|")
}

// Limit bounds the motion along one axis.
type Limit struct {
	Min     float32
	Max     float32
	Impulse float32
}

// MotorModel is how motor stiffness and damping are interpreted.
type MotorModel int32

const (
	// AccelerationBased motors scale with the mass of the bodies.
	AccelerationBased MotorModel = iota

	// ForceBased motors apply forces directly.
	ForceBased
)

// Motor drives one axis towards a target velocity and position.
type Motor struct {
	TargetVel float32
	TargetPos float32
	Stiffness float32
	Damping   float32
	MaxForce  float32
	Impulse   float32
	Model     MotorModel
}

// Descriptor is a generic six-axis joint.
type Descriptor struct {

	// Locked axes allow no relative motion.
	Locked Axes

	// Limited axes are bounded by their Limits entry.
	Limited Axes

	// Motor axes are driven by their Motors entry.
	Motor Axes

	// Coupled axes move together.
	Coupled Axes

	// LocalFrame1 is the joint frame in the parent body.
	LocalFrame1 scene.Pose

	// LocalFrame2 is the joint frame in the child body.
	LocalFrame2 scene.Pose

	Limits [AxesN]Limit
	Motors [AxesN]Motor

	// ContactsEnabled enables contacts between the two bodies.
	ContactsEnabled bool
}

// NewDescriptor returns a descriptor with the given locked axes,
// identity frames, unbounded limits and motors.
func NewDescriptor(locked Axes) Descriptor {
	d := Descriptor{
		Locked:          locked,
		LocalFrame1:     scene.NewPose(),
		LocalFrame2:     scene.NewPose(),
		ContactsEnabled: true,
	}
	for i := range AxesN {
		d.Limits[i] = Limit{Min: -math32.MaxFloat32, Max: math32.MaxFloat32}
		d.Motors[i] = Motor{MaxForce: math32.MaxFloat32}
	}
	return d
}

// SetLimits limits the given axis index to [lo, hi].
func (d *Descriptor) SetLimits(axis int, lo, hi float32) {
	d.Limited |= 1 << axis
	d.Limits[axis].Min = lo
	d.Limits[axis].Max = hi
}

// SetMotor sets the motor of the given axis index.
func (d *Descriptor) SetMotor(axis int, m Motor) {
	d.Motor |= 1 << axis
	d.Motors[axis] = m
}

func (d Descriptor) String() string {
	return fmt.Sprintf("locked: %v limited: %v motor: %v", d.Locked, d.Limited, d.Motor)
}
