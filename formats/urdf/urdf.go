// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package urdf is the robot-description format: an XML document of
// links connected by joints, in a Z-up coordinate convention.
package urdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/xyzasset/math32"
)

// Vector is a space separated list of three numbers.
type Vector math32.Vector3

func (v Vector) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%g %g %g", v.X, v.Y, v.Z)), nil
}

func (v *Vector) UnmarshalText(b []byte) error {
	fs, err := parseFloats(string(b), 3)
	if err != nil {
		return err
	}
	*v = Vector(math32.Vec3(fs[0], fs[1], fs[2]))
	return nil
}

// V returns the vector as a [math32.Vector3].
func (v Vector) V() math32.Vector3 {
	return math32.Vector3(v)
}

// RGBA is a space separated list of four 0-1 color components.
type RGBA [4]float32

func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%g %g %g %g", c[0], c[1], c[2], c[3])), nil
}

func (c *RGBA) UnmarshalText(b []byte) error {
	fs, err := parseFloats(string(b), 4)
	if err != nil {
		return err
	}
	copy(c[:], fs)
	return nil
}

func parseFloats(s string, n int) ([]float32, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d numbers, got %q", n, s)
	}
	fs := make([]float32, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		fs[i] = float32(v)
	}
	return fs, nil
}

// Robot is the root of a robot description.
type Robot struct {
	XMLName   xml.Name   `xml:"robot"`
	Name      string     `xml:"name,attr"`
	Materials []Material `xml:"material"`
	Links     []Link     `xml:"link"`
	Joints    []Joint    `xml:"joint"`
}

// Material is a named color, declared at the top level or inline in
// a visual.
type Material struct {
	Name    string   `xml:"name,attr"`
	Color   *Color   `xml:"color"`
	Texture *Texture `xml:"texture"`
}

type Color struct {
	RGBA RGBA `xml:"rgba,attr"`
}

type Texture struct {
	Filename string `xml:"filename,attr"`
}

// Origin is a placement relative to the parent frame.
type Origin struct {
	XYZ Vector `xml:"xyz,attr"`
	RPY Vector `xml:"rpy,attr"`
}

// Link is a rigid body.
type Link struct {
	Name       string      `xml:"name,attr"`
	Inertial   *Inertial   `xml:"inertial"`
	Visuals    []Visual    `xml:"visual"`
	Collisions []Collision `xml:"collision"`
}

type Inertial struct {
	Origin *Origin `xml:"origin"`
	Mass   Value   `xml:"mass"`
}

type Value struct {
	Value float32 `xml:"value,attr"`
}

type Visual struct {
	Name     string    `xml:"name,attr,omitempty"`
	Origin   *Origin   `xml:"origin"`
	Geometry Geometry  `xml:"geometry"`
	Material *Material `xml:"material"`
}

type Collision struct {
	Name     string   `xml:"name,attr,omitempty"`
	Origin   *Origin  `xml:"origin"`
	Geometry Geometry `xml:"geometry"`
}

// Geometry has exactly one of its shapes set.
type Geometry struct {
	Box      *Box      `xml:"box"`
	Cylinder *Cylinder `xml:"cylinder"`
	Sphere   *Sphere   `xml:"sphere"`
	Mesh     *Mesh     `xml:"mesh"`
}

type Box struct {
	Size Vector `xml:"size,attr"`
}

type Cylinder struct {
	Radius float32 `xml:"radius,attr"`
	Length float32 `xml:"length,attr"`
}

type Sphere struct {
	Radius float32 `xml:"radius,attr"`
}

type Mesh struct {
	Filename string `xml:"filename,attr"`
}

// Joint connects a child link to its parent link.
type Joint struct {
	Name     string    `xml:"name,attr"`
	Type     string    `xml:"type,attr"`
	Origin   *Origin   `xml:"origin"`
	Parent   LinkRef   `xml:"parent"`
	Child    LinkRef   `xml:"child"`
	Axis     *Axis     `xml:"axis"`
	Limit    *Limit    `xml:"limit"`
	Dynamics *Dynamics `xml:"dynamics"`
}

type LinkRef struct {
	Link string `xml:"link,attr"`
}

type Axis struct {
	XYZ Vector `xml:"xyz,attr"`
}

type Limit struct {
	Lower    float32 `xml:"lower,attr"`
	Upper    float32 `xml:"upper,attr"`
	Effort   float32 `xml:"effort,attr"`
	Velocity float32 `xml:"velocity,attr"`
}

type Dynamics struct {
	Damping  float32 `xml:"damping,attr"`
	Friction float32 `xml:"friction,attr"`
}

func (o *Origin) values() (xyz, rpy math32.Vector3) {
	if o == nil {
		return
	}
	return o.XYZ.V(), o.RPY.V()
}
