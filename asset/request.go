// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import "fmt"

// RequestState is the stage of a [Request]. It only ever advances.
type RequestState int32

const (
	// StatePath holds a bare path that has not been loaded.
	StatePath RequestState = iota

	// StateHandle holds the handle of a load in progress.
	StateHandle

	// StateLoaded holds the parsed document, ready to materialize.
	StateLoaded
)

func (rs RequestState) String() string {
	switch rs {
	case StatePath:
		return "Path"
	case StateHandle:
		return "Handle"
	case StateLoaded:
		return "Loaded"
	}
	return fmt.Sprintf("RequestState(%d)", int32(rs))
}

// Request is a staged request for a document of type D attached to a
// node. The resolver advances it from Path to Handle to Loaded, then
// materializes the document and removes the request: the removal is
// the commit point of the node's materialized state.
type Request[D Document] struct {
	State  RequestState
	Path   Path
	Handle Handle
	Doc    D

	// FailedLoadAttempts counts the ticks the load was not yet
	// complete. It is for diagnostics only and never ends the request.
	FailedLoadAttempts int
}

// FromPath returns a request for the document at the given path.
func FromPath[D Document](p Path) Request[D] {
	return Request[D]{State: StatePath, Path: p}
}

// FromHandle returns a request for a load that was already issued.
func FromHandle[D Document](h Handle) Request[D] {
	return Request[D]{State: StateHandle, Path: h.Path(), Handle: h}
}

// FromDocument returns a request for an already parsed document.
func FromDocument[D Document](p Path, doc D) Request[D] {
	return Request[D]{State: StateLoaded, Path: p, Doc: doc}
}

// Install installs the resolver for documents of type D.
func (r Request[D]) Install(rs *Resolver) {
	InstallResolver[D](rs)
}

func (r Request[D]) isStaged() {}

// Staged is implemented by every [Request] type, so that other
// systems can tell whether a node still waits on a document.
type Staged interface {
	isStaged()
}

// Installer is implemented by components that need a per-type system,
// which the materializer installs the first time such a component is
// produced.
type Installer interface {
	Install(rs *Resolver)
}
