// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics has the physical capability tags of scene nodes:
// rigid bodies, their mass, and their collision settings.
// Colliders and joints are in the subpackages.
package physics

import (
	"fmt"
	"strings"

	"cogentcore.org/xyzasset/math32"
)

// BodyKind is how a rigid body moves.
type BodyKind int32

const (
	// Dynamic bodies are moved by forces and contacts.
	Dynamic BodyKind = iota

	// Fixed bodies never move.
	Fixed

	// Kinematic bodies are moved by setting their pose.
	Kinematic
)

func (bk BodyKind) String() string {
	switch bk {
	case Dynamic:
		return "dynamic"
	case Fixed:
		return "fixed"
	case Kinematic:
		return "kinematic"
	}
	return fmt.Sprintf("BodyKind(%d)", int32(bk))
}

// ParseBodyKind parses a body kind name, case-insensitively.
func ParseBodyKind(s string) (BodyKind, error) {
	switch strings.ToLower(s) {
	case "dynamic":
		return Dynamic, nil
	case "fixed", "static":
		return Fixed, nil
	case "kinematic":
		return Kinematic, nil
	}
	return Dynamic, fmt.Errorf("unknown body kind %q", s)
}

// RigidBody marks a node as a rigid body, with the rigid body
// properties of bounce and friction.
type RigidBody struct {
	Kind BodyKind

	// COR or coefficient of restitution -- how elastic is the collision i.e., final velocity / initial velocity
	Bounce float32 `min:"0" max:"1"`

	// friction coefficient -- how much friction is generated by transverse motion
	Friction float32
}

// NewRigidBody returns a rigid body of the given kind with default
// contact properties.
func NewRigidBody(kind BodyKind) RigidBody {
	return RigidBody{Kind: kind, Friction: 0.5}
}

// Mass is the mass of a rigid body in kg, with its center of mass in
// the body frame.
type Mass struct {
	Mass   float32
	Center math32.Vector3
}

// ContinuousCollision enables continuous collision detection on a
// rigid body, so that fast bodies do not pass through thin ones.
type ContinuousCollision struct {
	Enabled bool
}

// CollisionGroups are the collision filter bit masks of a collider:
// two colliders interact when each one's Memberships intersects the
// other's Filter.
type CollisionGroups struct {
	Memberships uint32
	Filter      uint32
}

// AllGroups is the default collision group mask.
const AllGroups = ^uint32(0)

// Interacts returns whether the two groups interact.
func (cg CollisionGroups) Interacts(o CollisionGroups) bool {
	return cg.Memberships&o.Filter != 0 && o.Memberships&cg.Filter != 0
}
