// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collider

import (
	"log/slog"
	"reflect"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/math32"
	"cogentcore.org/xyzasset/metrics"
	"cogentcore.org/xyzasset/scene"
	"cogentcore.org/xyzasset/xyz"
)

// Approximator derives [Collider]s for nodes with a [Request].
type Approximator struct {
	Server  *asset.Server
	Hulls   HullBuilder
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Install installs the approximator system on the schedule, once.
func (ap *Approximator) Install(sc *scene.Schedule) {
	if ap.Hulls == nil {
		ap.Hulls = PointCloud{}
	}
	if ap.Logger == nil {
		ap.Logger = slog.Default()
	}
	sc.Ensure(scene.StageCollide, reflect.TypeFor[Request](), func() scene.System {
		return ap.Update
	})
}

// Update derives colliders for every node whose geometry is ready.
// Nodes still waiting on a load keep their request and are retried
// on the next tick.
func (ap *Approximator) Update(w *scene.World) {
	cmds := w.Commands()
	scene.Each(w, func(id scene.NodeID, req *Request) {
		pts, ready := ap.points(w, id)
		if !ready {
			return
		}
		scene.RemoveLater[Request](cmds, id)
		if len(pts) == 0 {
			ap.Logger.Warn("no geometry for collider", "node", id, "name", scene.NameOf(w, id), "shape", req.Shape.String())
			return
		}
		cl, err := Approximate(req.Shape, pts, ap.Hulls)
		if err != nil {
			ap.Logger.Error("collider approximation failed", "node", id, "err", err)
			return
		}
		cmds.Insert(id, cl)
		ap.Metrics.IncCollider(req.Shape.String())
	})
}

// points returns the vertex positions of the geometry of the node and
// its subtree, and false while any of it is not available yet.
func (ap *Approximator) points(w *scene.World, id scene.NodeID) ([]math32.Vector3, bool) {
	var pts []math32.Vector3
	ready := true
	w.WalkDown(id, func(n scene.NodeID) bool {
		if asset.IsStaged(w, n) {
			ready = false
			return false
		}
		gm, ok := scene.Get[xyz.Geometry](w, n)
		if !ok {
			return true
		}
		ps, ok := gm.Points(ap.Server)
		if !ok {
			ready = false
			return false
		}
		pts = append(pts, ps...)
		return true
	})
	return pts, ready
}
