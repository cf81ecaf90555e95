// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/xyzasset/base/errors"
	"cogentcore.org/xyzasset/base/ordmap"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	osfs "github.com/hack-pad/hackpadfs/os"
)

// Standard source names registered by [DefaultSources].
const (
	// SourceAssets is the read-only shared assets root.
	SourceAssets = "assets"

	// SourcePackages is the read-only robot-description package root.
	SourcePackages = "packages"

	// SourceSaves is the read-write root that assemblies are written to.
	SourceSaves = "saves"
)

// Source is a named filesystem that paths can refer to.
type Source struct {
	Name string

	// FS is the filesystem; it must support writes if Writable is set.
	FS hackpadfs.FS

	// Writable is whether assemblies may be written to this source.
	Writable bool

	// Dir is the operating system directory of the source, if any.
	Dir string
}

// DirSource returns a source rooted at the given operating system directory.
func DirSource(name, dir string, writable bool) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	root := osfs.NewFS()
	rel := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	sub, err := root.Sub(rel)
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, FS: sub, Writable: writable, Dir: abs}, nil
}

// MemSource returns a source backed by an empty in-memory filesystem.
func MemSource(name string, writable bool) (*Source, error) {
	mfs, err := mem.NewFS()
	if err != nil {
		return nil, err
	}
	return &Source{Name: name, FS: mfs, Writable: writable}, nil
}

// Sources is the registry of named sources. It is safe for concurrent
// use, since loads and writes run on worker goroutines.
type Sources struct {
	mu   sync.RWMutex
	srcs ordmap.Map[string, *Source]
}

// NewSources returns a registry with the given sources.
func NewSources(srcs ...*Source) *Sources {
	ss := &Sources{}
	for _, s := range srcs {
		ss.Add(s)
	}
	return ss
}

// DefaultSources returns in-memory assets, packages and saves sources.
func DefaultSources() *Sources {
	return NewSources(
		errors.Must1(MemSource(SourceAssets, false)),
		errors.Must1(MemSource(SourcePackages, false)),
		errors.Must1(MemSource(SourceSaves, true)),
	)
}

// Add registers a source, replacing any source with the same name.
func (ss *Sources) Add(s *Source) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.srcs.Add(s.Name, s)
}

// Source returns the source of the given name.
func (ss *Sources) Source(name string) (*Source, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.srcs.ValueByKeyTry(name)
}

// Names returns the registered source names in registration order.
func (ss *Sources) Names() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.srcs.Keys()
}

// IsWritable returns whether name is a registered writable source.
func (ss *Sources) IsWritable(name string) bool {
	s, ok := ss.Source(name)
	return ok && s.Writable
}

// Read returns the bytes of the file at the given path.
func (ss *Sources) Read(p Path) ([]byte, error) {
	s, ok := ss.Source(p.Source)
	if !ok {
		return nil, errors.New(errors.KindSource, p.String(), "unknown source")
	}
	b, err := fs.ReadFile(s.FS, p.Rel)
	return b, errors.Wrap(errors.KindIO, p.String(), err)
}

// Write writes the file at the given path, creating directories as
// needed. The source must be writable.
func (ss *Sources) Write(p Path, data []byte) error {
	s, ok := ss.Source(p.Source)
	if !ok {
		return errors.New(errors.KindSource, p.String(), "unknown source")
	}
	if !s.Writable {
		return errors.New(errors.KindSource, p.String(), "source is read-only")
	}
	if dir := path.Dir(p.Rel); dir != "." {
		if err := hackpadfs.MkdirAll(s.FS, dir, 0o755); err != nil {
			return errors.Wrap(errors.KindIO, p.String(), err)
		}
	}
	return errors.Wrap(errors.KindIO, p.String(), hackpadfs.WriteFullFile(s.FS, p.Rel, data, 0o644))
}
