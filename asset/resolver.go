// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"fmt"
	"log/slog"
	"reflect"

	"cogentcore.org/xyzasset/metrics"
	"cogentcore.org/xyzasset/scene"
)

// LoadFailed is sent when a request is dropped because its document
// could not be loaded or parsed. Such failures are never retried.
type LoadFailed struct {
	Node scene.NodeID
	Path Path
	Err  error
}

// Resolver advances staged [Request]s and materializes the documents
// they resolve to. It installs one resolver system per document type
// on its schedule, lazily, the first time a request of that type is
// staged or produced by materialization.
type Resolver struct {
	Schedule *scene.Schedule
	Server   *Server
	Ledger   *Ledger

	// Failed receives load and parse failures.
	Failed scene.Events[LoadFailed]

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewResolver returns a resolver on the given schedule and server.
// It installs the system that starts queued loads.
func NewResolver(sc *scene.Schedule, srv *Server) *Resolver {
	rs := &Resolver{
		Schedule: sc,
		Server:   srv,
		Ledger:   NewLedger(),
		Logger:   slog.Default(),
	}
	sc.Ensure(scene.StageResolve, reflect.TypeFor[*Server](), func() scene.System {
		return func(w *scene.World) { srv.Update() }
	})
	return rs
}

// InstallResolver installs the resolver system for documents of type
// D if it is not installed yet.
func InstallResolver[D Document](rs *Resolver) {
	rs.Schedule.Ensure(scene.StageResolve, reflect.TypeFor[Request[D]](), func() scene.System {
		return func(w *scene.World) {
			resolve[D](rs, w)
		}
	})
}

// Stage queues a new root node requesting the document at the given
// path, installs its resolver and returns the node id.
func Stage[D Document](rs *Resolver, p Path, bundle ...any) scene.NodeID {
	InstallResolver[D](rs)
	return rs.Schedule.World.Commands().Spawn(append(bundle, FromPath[D](p))...)
}

// StageOn queues a request for the document at the given path on an
// existing node and installs its resolver.
func StageOn[D Document](rs *Resolver, id scene.NodeID, p Path) {
	InstallResolver[D](rs)
	rs.Schedule.World.Commands().Insert(id, FromPath[D](p))
}

func resolve[D Document](rs *Resolver, w *scene.World) {
	cmds := w.Commands()
	scene.Each(w, func(id scene.NodeID, req *Request[D]) {
		switch req.State {
		case StatePath:
			req.Handle = rs.Server.Load(req.Path)
			req.State = StateHandle
			return
		case StateHandle:
			switch rs.Server.State(req.Handle) {
			case NotLoaded, Loading:
				req.FailedLoadAttempts++
				return
			case Failed:
				_, err := rs.Server.Asset(req.Handle)
				rs.Logger.Error("asset load failed", "node", id, "path", req.Path.String(), "err", err)
				rs.Failed.Send(LoadFailed{Node: id, Path: req.Path, Err: err})
				rs.Metrics.IncLoadFailure()
				scene.RemoveLater[Request[D]](cmds, id)
				return
			}
			a, _ := rs.Server.Asset(req.Handle)
			doc, ok := a.(D)
			if !ok {
				panic(fmt.Sprintf("asset.Request[%v] on node %d resolved to %T", reflect.TypeFor[D](), id, a))
			}
			req.Doc = doc
			req.State = StateLoaded
		}
		rs.Materialize(w, id, req.Path, req.Doc)
		scene.RemoveLater[Request[D]](cmds, id)
	})
}

// Materialize decomposes the document requested by the given node and
// queues the resulting nodes and components. The caller removes the
// request in the same command flush.
func (rs *Resolver) Materialize(w *scene.World, id scene.NodeID, p Path, doc Document) {
	dc := &DecomposeContext{Node: id, World: w, Path: p, Logger: rs.Logger}
	st, err := doc.Decompose(dc)
	if err != nil {
		rs.Logger.Error("decompose failed", "node", id, "path", p.String(), "err", err)
		return
	}
	rs.Metrics.IncResolved(fmt.Sprintf("%T", doc))
	cmds := w.Commands()
	if st.IsRoot {
		rs.install(st.Root)
		cmds.Insert(id, st.Root...)
		return
	}
	var parent *scene.Pose
	if st.Split.Separate && st.Split.InheritTransform {
		parent, _ = scene.Get[scene.Pose](w, id)
	}
	for _, b := range st.Children {
		rs.install(b)
		if parent != nil {
			if ps, i := b.Pose(); i >= 0 {
				b = b.WithPose(parent.Compose(ps))
			} else {
				b = b.WithPose(*parent)
			}
		}
		child := cmds.Spawn(b...)
		if !st.Split.Separate {
			cmds.SetParent(child, id)
		}
		rs.Ledger.Append(id, child)
	}
	rs.Metrics.AddMaterialized(len(st.Children))
}

func (rs *Resolver) install(b Bundle) {
	for _, c := range b {
		if in, ok := c.(Installer); ok {
			in.Install(rs)
		}
	}
}

// IsStaged returns whether the node still holds a staged request of
// any document type.
func IsStaged(w *scene.World, id scene.NodeID) bool {
	for _, c := range w.Components(id) {
		if _, ok := c.(Staged); ok {
			return true
		}
	}
	return false
}
