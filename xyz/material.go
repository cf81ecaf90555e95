// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
)

// Material describes the surface properties of a node: its colors and
// shininess, i.e., phong lighting parameters.
// Main color is used for both ambient and diffuse color, and alpha component
// is used for opacity. The Emissive color is only for glowing objects.
type Material struct {

	// Name is the name of the material in the document it came from.
	Name string

	// Color is the main color of surface, used for both ambient and diffuse color -- alpha component determines transparency
	Color color.RGBA

	// Emissive is the color that surface emits independent of any lighting -- i.e., glow
	Emissive color.RGBA

	// Shiny is the specular shininess factor: 0 = very broad diffuse reflection, higher values are more focal.
	Shiny float32

	// Reflective is the specular reflectiveness factor.
	Reflective float32

	// Bright is an overall multiplier on final computed color value.
	Bright float32

	// Texture is the path of a texture image, if any.
	Texture string
}

// NewMaterial returns a material with default values and the given color.
func NewMaterial(name string, clr color.RGBA) Material {
	mt := Material{}
	mt.Defaults()
	mt.Name = name
	mt.Color = clr
	return mt
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{128, 128, 128, 255}
	mt.Emissive = color.RGBA{0, 0, 0, 0}
	mt.Shiny = 30
	mt.Reflective = 1
	mt.Bright = 1
}

func (mt Material) String() string {
	return fmt.Sprintf("%s: %v", mt.Name, mt.Color)
}

// IsTransparent returns true if color has alpha < 255
func (mt *Material) IsTransparent() bool {
	return mt.Color.A < 255
}

// RGBAFromFloats converts 0-1 float components to a color,
// clamping out of range values.
func RGBAFromFloats(r, g, b, a float32) color.RGBA {
	cv := func(v float32) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{cv(r), cv(g), cv(b), cv(a)}
}

// Floats returns the 0-1 float components of a color.
func Floats(c color.RGBA) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}
