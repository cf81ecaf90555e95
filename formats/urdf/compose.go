// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package urdf

import (
	"errors"

	"cogentcore.org/xyzasset/assembly"
	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/physics"
	"cogentcore.org/xyzasset/physics/joint"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
)

// ComposeParams are the parameters of composing a robot description.
type ComposeParams struct {

	// RobotName is the name of the robot.
	RobotName string
}

var errNoLinks = errors.New("urdf: no named bodies selected")

// Compose builds a robot description from the selected rigid bodies,
// with a joint for every binding between two of them.
func (Format) Compose(env *assembly.Env, selected []scene.NodeID, params ComposeParams) (asset.Document, error) {
	w := env.World
	rb := &Robot{Name: params.RobotName}
	names := map[scene.NodeID]string{}
	mats := map[string]bool{}
	for _, id := range selected {
		name := scene.NameOf(w, id)
		if !w.Alive(id) || name == "" || !scene.Has[physics.RigidBody](w, id) {
			continue
		}
		names[id] = name
		ln := Link{Name: name}
		if ms, ok := scene.Get[physics.Mass](w, id); ok {
			ln.Inertial = &Inertial{Mass: Value{ms.Mass}}
			if ms.Center != (math32.Vector3{}) {
				ln.Inertial.Origin = &Origin{XYZ: Vector(joint.AxisToDoc(ms.Center))}
			}
		}
		if vs, ok := composeVisual(env, id); ok {
			if vs.Material != nil && !mats[vs.Material.Name] {
				mats[vs.Material.Name] = true
				rb.Materials = append(rb.Materials, *vs.Material)
			}
			if vs.Material != nil {
				vs.Material = &Material{Name: vs.Material.Name}
			}
			ln.Visuals = append(ln.Visuals, vs)
		}
		rb.Links = append(rb.Links, ln)
	}
	if len(rb.Links) == 0 {
		return nil, errNoLinks
	}
	for _, id := range selected {
		bn, ok := scene.Get[joint.Binding](w, id)
		if !ok {
			continue
		}
		child, ok1 := names[id]
		parent, ok2 := names[bn.Parent]
		if !ok1 || !ok2 {
			continue
		}
		rb.Joints = append(rb.Joints, composeJoint(parent, child, bn.Descriptor))
	}
	return rb, nil
}

func composeVisual(env *assembly.Env, id scene.NodeID) (Visual, bool) {
	w := env.World
	var vs Visual
	gm, ok := scene.Get[xyz.Geometry](w, id)
	if !ok {
		return vs, false
	}
	switch gm.Shape {
	case xyz.ShapeBox:
		vs.Geometry.Box = &Box{Size: Vector(joint.AxisToDoc(gm.Size))}
	case xyz.ShapeCylinder:
		vs.Geometry.Cylinder = &Cylinder{Radius: gm.Size.X, Length: gm.Size.Y}
	case xyz.ShapeSphere:
		vs.Geometry.Sphere = &Sphere{Radius: gm.Size.X}
	default:
		env.Logger.Warn("mesh geometry has no file to refer to, leaving it out", "node", id, "name", scene.NameOf(w, id))
		return vs, false
	}
	if mt, ok := scene.Get[xyz.Material](w, id); ok {
		c := xyz.Floats(mt.Color)
		vs.Material = &Material{Name: mt.Name, Color: &Color{RGBA: RGBA(c)}}
		if mt.Texture != "" {
			vs.Material.Texture = &Texture{Filename: mt.Texture}
		}
	}
	return vs, true
}

func composeJoint(parent, child string, d joint.Descriptor) Joint {
	p := joint.ToParams(d)
	jt := Joint{
		Name:   parent + "_to_" + child,
		Type:   p.Kind.String(),
		Origin: &Origin{XYZ: Vector(p.XYZ), RPY: Vector(p.RPY)},
		Parent: LinkRef{parent},
		Child:  LinkRef{child},
		Axis:   &Axis{XYZ: Vector(p.Axis)},
	}
	if p.HasLimit {
		jt.Limit = &Limit{Lower: p.Lower, Upper: p.Upper, Effort: p.Effort, Velocity: p.Velocity}
	}
	if p.Damping != 0 || p.Friction != 0 {
		jt.Dynamics = &Dynamics{Damping: p.Damping, Friction: p.Friction}
	}
	return jt
}

var _ assembly.Composer[ComposeParams] = Format{}
