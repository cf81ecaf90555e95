// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"sync"

	"cogentcore.org/xyzasset/base/errors"
	"cogentcore.org/xyzasset/base/ordmap"
	"golang.org/x/sync/errgroup"
)

// LoadState is the state of an asset in the [Server].
type LoadState int32

const (
	// NotLoaded means no load has been requested.
	NotLoaded LoadState = iota

	// Loading means the load is queued or in progress.
	Loading

	// Loaded means the asset is available.
	Loaded

	// Failed means the load failed; it is never retried.
	Failed
)

func (ls LoadState) String() string {
	switch ls {
	case NotLoaded:
		return "NotLoaded"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	}
	return "LoadState(?)"
}

// Handle is an opaque reference to an asset in a [Server].
type Handle struct {
	path Path
}

// Path returns the path the handle refers to.
func (h Handle) Path() Path {
	return h.path
}

// IsValid returns whether the handle refers to an asset.
func (h Handle) IsValid() bool {
	return !h.path.IsZero()
}

func (h Handle) String() string {
	return h.path.String()
}

type entry struct {
	state LoadState
	asset any
	err   error

	// again is set when the file changed during a load.
	again bool
}

// Server loads assets from [Sources] on a bounded pool of worker
// goroutines. Loads of the same path share one entry. Its state is
// observed with non-blocking calls, so the tick never waits on a load.
type Server struct {
	Sources *Sources
	Formats *Formats

	mu      sync.Mutex
	entries map[Path]*entry
	queue   []Path
	group   errgroup.Group
}

// NewServer returns a server that runs at most workers loads at once.
func NewServer(srcs *Sources, fmts *Formats, workers int) *Server {
	s := &Server{Sources: srcs, Formats: fmts, entries: make(map[Path]*entry)}
	if workers > 0 {
		s.group.SetLimit(workers)
	}
	return s
}

// Load requests the asset at the given path and returns its handle.
// Only the file part of the path is read; labeled sub-assets become
// available when the file is parsed.
func (s *Server) Load(p Path) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := p.File()
	if _, ok := s.entries[f]; !ok {
		s.entries[f] = &entry{state: Loading}
		s.queue = append(s.queue, f)
	}
	s.startLocked()
	return Handle{path: p}
}

// Insert adds an already available asset under the given path.
func (s *Server) Insert(p Path, a any) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[p] = &entry{state: Loaded, asset: a}
	return Handle{path: p}
}

// Reload queues the file of the given path to be read and parsed
// again, replacing its asset and labeled sub-assets once loaded. A
// file that is loading is parsed again when the current load ends.
// It returns false if the file was never requested. Documents already
// materialized from the old asset are not changed.
func (s *Server) Reload(p Path) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := p.File()
	e, ok := s.entries[f]
	if !ok {
		return false
	}
	if e.state == Loading {
		e.again = true
		return true
	}
	for k := range s.entries {
		if k.Label != "" && k.File() == f {
			delete(s.entries, k)
		}
	}
	e.state = Loading
	e.asset = nil
	e.err = nil
	s.queue = append(s.queue, f)
	s.startLocked()
	return true
}

// Update starts queued loads while workers are available.
func (s *Server) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked()
}

// Wait starts every queued load, blocking for workers as needed,
// and waits until no load is in progress.
func (s *Server) Wait() {
	for {
		s.mu.Lock()
		queue := s.queue
		s.queue = nil
		s.mu.Unlock()
		for _, p := range queue {
			s.group.Go(func() error {
				s.load(p)
				return nil
			})
		}
		s.group.Wait()
		s.mu.Lock()
		n := len(s.queue)
		s.mu.Unlock()
		if n == 0 {
			return
		}
	}
}

// startLocked starts queued loads without blocking, leaving the rest
// queued when all workers are busy.
func (s *Server) startLocked() {
	for len(s.queue) > 0 {
		p := s.queue[0]
		if !s.group.TryGo(func() error {
			s.load(p)
			return nil
		}) {
			return
		}
		s.queue = s.queue[1:]
	}
}

func (s *Server) load(p Path) {
	a, labeled, err := s.parse(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[p]
	for e.again {
		e.again = false
		s.mu.Unlock()
		a, labeled, err = s.parse(p)
		s.mu.Lock()
	}
	if err != nil {
		e.state = Failed
		e.err = err
		return
	}
	e.state = Loaded
	e.asset = a
	for _, kv := range labeled {
		s.entries[p.WithLabel(kv.Key)] = &entry{state: Loaded, asset: kv.Value}
	}
}

func (s *Server) parse(p Path) (any, []ordmap.KeyValue[string, any], error) {
	f, err := s.Formats.ForPath(p)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.Sources.Read(p)
	if err != nil {
		return nil, nil, err
	}
	lc := &LoadContext{Path: p}
	a, err := f.Parse(b, lc)
	if err != nil {
		return nil, nil, errors.Wrap(errors.KindParse, p.String(), err)
	}
	if a == nil {
		return nil, nil, errors.New(errors.KindMissing, p.String(), "document has no parse tree")
	}
	return a, lc.labeled.Order, nil
}

// State returns the load state of the asset.
func (s *Server) State(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _, _ := s.lookupLocked(h.path)
	return st
}

// Asset returns the asset if it is loaded, or the load error if it
// failed. It returns nil and no error while the asset is loading.
func (s *Server) Asset(h Handle) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, a, err := s.lookupLocked(h.path)
	return a, err
}

func (s *Server) lookupLocked(p Path) (LoadState, any, error) {
	if e, ok := s.entries[p]; ok {
		return e.state, e.asset, e.err
	}
	if p.Label == "" {
		return NotLoaded, nil, nil
	}
	fe, ok := s.entries[p.File()]
	if !ok {
		return NotLoaded, nil, nil
	}
	switch fe.state {
	case Loaded:
		return Failed, nil, errors.Errorf(errors.KindMissing, p.String(), "no sub-asset labeled %q", p.Label)
	case Failed:
		return Failed, nil, fe.err
	}
	return fe.state, nil, nil
}

// Get returns the loaded asset of type T behind the handle, and false
// if it is not loaded or has another type.
func Get[T any](s *Server, h Handle) (T, bool) {
	var z T
	a, err := s.Asset(h)
	if err != nil || a == nil {
		return z, false
	}
	v, ok := a.(T)
	return v, ok
}
