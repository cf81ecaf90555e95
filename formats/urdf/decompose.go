// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package urdf

import (
	"strings"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/formats/model"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/physics"
	"cogentcore.org/xyzasset/physics/collider"
	"cogentcore.org/xyzasset/physics/joint"
	"cogentcore.org/xyzasset/rolldown"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
)

// MeshGroups are the collision groups rolled down from a link to the
// nodes of its mesh, except to nodes that are bodies themselves.
type MeshGroups = rolldown.Tag[physics.CollisionGroups, rolldown.Markers1[physics.RigidBody]]

// decomposer holds the lookup tables of one decomposition.
type decomposer struct {
	rb  *Robot
	dc  *asset.DecomposeContext
	log func(msg string, args ...any)

	links     map[string]*Link
	joints    map[string]*Joint
	materials map[string]*Material
	poses     map[string]scene.Pose
	visiting  map[string]bool
}

// Decompose creates one separate node per link, placed by the chain
// of joint origins from the root link and tagged with the robot name.
func (rb *Robot) Decompose(dc *asset.DecomposeContext) (asset.Structure, error) {
	d := &decomposer{
		rb:        rb,
		dc:        dc,
		log:       dc.Logger.Warn,
		links:     map[string]*Link{},
		joints:    map[string]*Joint{},
		materials: map[string]*Material{},
		poses:     map[string]scene.Pose{},
		visiting:  map[string]bool{},
	}
	for i := range rb.Materials {
		d.materials[rb.Materials[i].Name] = &rb.Materials[i]
	}
	var order []*Link
	for i := range rb.Links {
		ln := &rb.Links[i]
		if _, dup := d.links[ln.Name]; dup {
			d.log("duplicate link, skipping", "path", dc.Path.String(), "link", ln.Name)
			continue
		}
		d.links[ln.Name] = ln
		order = append(order, ln)
	}
	for i := range rb.Joints {
		jt := &rb.Joints[i]
		_, hasParent := d.links[jt.Parent.Link]
		_, hasChild := d.links[jt.Child.Link]
		if !hasParent || !hasChild {
			d.log("joint refers to a missing link, skipping", "path", dc.Path.String(), "joint", jt.Name, "parent", jt.Parent.Link, "child", jt.Child.Link)
			continue
		}
		if _, dup := d.joints[jt.Child.Link]; dup {
			d.log("link is the child of several joints, skipping", "path", dc.Path.String(), "joint", jt.Name, "child", jt.Child.Link)
			continue
		}
		d.joints[jt.Child.Link] = jt
	}
	bs := make([]asset.Bundle, 0, len(order))
	for _, ln := range order {
		bs = append(bs, d.link(ln))
	}
	return asset.Children(asset.SplitPolicy{Separate: true, InheritTransform: true}, bs...), nil
}

// pose returns the placement of the link relative to the root link.
func (d *decomposer) pose(name string) scene.Pose {
	if ps, ok := d.poses[name]; ok {
		return ps
	}
	ps := scene.NewPose()
	jt, ok := d.joints[name]
	if ok && !d.visiting[name] {
		d.visiting[name] = true
		pos, rpy := jt.Origin.values()
		ps = d.pose(jt.Parent.Link).Compose(joint.PoseFromOrigin(pos, rpy))
		d.visiting[name] = false
	} else if ok {
		d.log("joint cycle, placing link at the origin", "path", d.dc.Path.String(), "link", name)
	}
	d.poses[name] = ps
	return ps
}

func (d *decomposer) link(ln *Link) asset.Bundle {
	b := asset.Bundle{
		scene.Name(ln.Name),
		scene.Group(d.rb.Name),
		d.pose(ln.Name),
		physics.NewRigidBody(physics.Dynamic),
		physics.ContinuousCollision{Enabled: true},
		physics.CollisionGroups{Memberships: physics.AllGroups, Filter: physics.AllGroups},
	}
	if ln.Inertial != nil {
		pos, _ := ln.Inertial.Origin.values()
		b = append(b, physics.Mass{Mass: ln.Inertial.Mass.Value, Center: joint.AxisToRuntime(pos)})
	}
	if len(ln.Visuals) > 1 {
		d.log("only the first visual of a link is used", "path", d.dc.Path.String(), "link", ln.Name, "visuals", len(ln.Visuals))
	}
	if len(ln.Visuals) > 0 {
		b = append(b, d.visual(ln, &ln.Visuals[0])...)
	}
	if jt, ok := d.joints[ln.Name]; ok {
		b = append(b, joint.ByName(jt.Parent.Link, joint.FromParams(d.params(jt))))
	}
	return b
}

func (d *decomposer) visual(ln *Link, vs *Visual) []any {
	var cs []any
	if mt := d.material(ln, vs.Material); mt != nil {
		cs = append(cs, *mt)
	}
	gm := &vs.Geometry
	switch {
	case gm.Box != nil:
		size := joint.AxisToRuntime(gm.Box.Size.V())
		cs = append(cs, xyz.Geometry{Shape: xyz.ShapeBox, Size: size},
			collider.Collider{Shape: collider.Cuboid, HalfExtents: size.MulScalar(0.5)})
	case gm.Cylinder != nil:
		cs = append(cs, xyz.Geometry{Shape: xyz.ShapeCylinder, Size: math32.Vec3(gm.Cylinder.Radius, gm.Cylinder.Length, 0)},
			collider.Collider{Shape: collider.Wheel, Radius: gm.Cylinder.Radius})
	case gm.Sphere != nil:
		cs = append(cs, xyz.Geometry{Shape: xyz.ShapeSphere, Size: math32.Vec3(gm.Sphere.Radius, 0, 0)},
			collider.Collider{Shape: collider.Sphere, Radius: gm.Sphere.Radius})
	case gm.Mesh != nil:
		p, err := d.meshPath(gm.Mesh.Filename)
		if err != nil {
			d.log("invalid mesh path, skipping geometry", "path", d.dc.Path.String(), "link", ln.Name, "mesh", gm.Mesh.Filename, "err", err)
			break
		}
		cs = append(cs, asset.FromPath[*model.Model](p), collider.Request{Shape: collider.Convex},
			MeshGroups{Value: physics.CollisionGroups{Memberships: physics.AllGroups, Filter: physics.AllGroups}})
	default:
		d.log("visual has no geometry", "path", d.dc.Path.String(), "link", ln.Name)
	}
	return cs
}

// meshPath resolves a mesh file name: package:// names are in the
// packages source, names without a scheme are relative to the
// document.
func (d *decomposer) meshPath(fn string) (asset.Path, error) {
	if rest, ok := strings.CutPrefix(fn, "package://"); ok {
		return asset.ParsePath(rest, asset.SourcePackages)
	}
	return d.dc.Path.Resolve(fn)
}

func (d *decomposer) material(ln *Link, ref *Material) *xyz.Material {
	if ref == nil {
		return nil
	}
	mt := ref
	if ref.Color == nil {
		named, ok := d.materials[ref.Name]
		if !ok {
			d.log("link refers to a missing material", "path", d.dc.Path.String(), "link", ln.Name, "material", ref.Name)
			return nil
		}
		mt = named
	}
	xm := xyz.NewMaterial(mt.Name, xyz.RGBAFromFloats(1, 1, 1, 1))
	if mt.Color != nil {
		c := mt.Color.RGBA
		xm.Color = xyz.RGBAFromFloats(c[0], c[1], c[2], c[3])
	}
	if mt.Texture != nil {
		xm.Texture = mt.Texture.Filename
	}
	return &xm
}

func (d *decomposer) params(jt *Joint) joint.Params {
	kind, err := joint.ParseKind(jt.Type)
	if err != nil {
		d.log("unknown joint type, using fixed", "path", d.dc.Path.String(), "joint", jt.Name, "type", jt.Type)
	}
	p := joint.Params{Kind: kind}
	p.XYZ, p.RPY = jt.Origin.values()
	if jt.Axis != nil {
		p.Axis = jt.Axis.XYZ.V()
	}
	if jt.Limit != nil {
		p.HasLimit = true
		p.Lower, p.Upper = jt.Limit.Lower, jt.Limit.Upper
		p.Effort, p.Velocity = jt.Limit.Effort, jt.Limit.Velocity
	}
	if jt.Dynamics != nil {
		p.Damping, p.Friction = jt.Dynamics.Damping, jt.Dynamics.Friction
	}
	return p
}
