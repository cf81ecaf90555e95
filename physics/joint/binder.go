// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package joint

import (
	"log/slog"
	"reflect"

	"cogentcore.org/xyzasset/metrics"
	"cogentcore.org/xyzasset/physics"
	"cogentcore.org/xyzasset/scene"
)

// Spec is a joint whose parent body is not resolved yet. The parent
// is named by ParentName, or given directly by ParentNode when the
// name is empty.
type Spec struct {
	ParentName string
	ParentNode scene.NodeID
	Descriptor Descriptor
}

// ByName returns a spec for the parent body with the given name, in
// the same group as the child.
func ByName(name string, d Descriptor) Spec {
	return Spec{ParentName: name, Descriptor: d}
}

// ByNode returns a spec for the given parent body.
func ByNode(id scene.NodeID, d Descriptor) Spec {
	return Spec{ParentNode: id, Descriptor: d}
}

// Binding is a joint between the node it is on and its parent body.
// It replaces the [Spec] it was resolved from.
type Binding struct {
	Parent     scene.NodeID
	Descriptor Descriptor
}

// Binder replaces [Spec]s by [Binding]s once their parent body exists.
type Binder struct {
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Install installs the binder system on the schedule, once.
func (bd *Binder) Install(sc *scene.Schedule) {
	if bd.Logger == nil {
		bd.Logger = slog.Default()
	}
	sc.Ensure(scene.StageBind, reflect.TypeFor[Spec](), func() scene.System {
		return bd.Update
	})
}

// Update binds every spec with exactly one matching parent body.
// Specs with no match, or an ambiguous one, are kept for the next tick.
func (bd *Binder) Update(w *scene.World) {
	cmds := w.Commands()
	scene.Each(w, func(id scene.NodeID, sp *Spec) {
		parent, ok := bd.resolve(w, id, sp)
		if !ok {
			return
		}
		scene.RemoveLater[Spec](cmds, id)
		cmds.Insert(id, Binding{Parent: parent, Descriptor: sp.Descriptor})
		bd.Metrics.IncJointBound()
	})
}

func (bd *Binder) resolve(w *scene.World, id scene.NodeID, sp *Spec) (scene.NodeID, bool) {
	if sp.ParentName == "" {
		return sp.ParentNode, sp.ParentNode != 0 && w.Alive(sp.ParentNode)
	}
	grp, hasGrp := scene.GroupOf(w, id)
	var found []scene.NodeID
	scene.Each(w, func(b scene.NodeID, _ *physics.RigidBody) {
		if b == id || !scene.Has[scene.Pose](w, b) || scene.NameOf(w, b) != sp.ParentName {
			return
		}
		if g, ok := scene.GroupOf(w, b); ok != hasGrp || g != grp {
			return
		}
		found = append(found, b)
	})
	switch len(found) {
	case 0:
		return 0, false
	case 1:
		return found[0], true
	}
	bd.Logger.Warn("ambiguous joint parent", "node", id, "parent", sp.ParentName, "group", string(grp), "matches", len(found))
	return 0, false
}
