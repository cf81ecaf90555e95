// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"log/slog"
	"strings"
	"sync"

	"cogentcore.org/xyzasset/base/errors"
	"cogentcore.org/xyzasset/base/ordmap"
	"cogentcore.org/xyzasset/scene"
)

// Document is a parsed asset that can be decomposed into nodes.
type Document interface {

	// Decompose returns the structure to materialize for the node that
	// requested this document. An error aborts only that request.
	Decompose(dc *DecomposeContext) (Structure, error)
}

// DecomposeContext is passed to [Document.Decompose].
type DecomposeContext struct {

	// Node is the node that requested the document.
	Node scene.NodeID

	// World is the world the node lives in. It must only be read:
	// all changes go through the returned [Structure].
	World *scene.World

	// Path is the path the document was loaded from.
	Path Path

	// Logger receives soft-skip warnings.
	Logger *slog.Logger
}

// Format is one on-disk document type: it parses bytes into assets
// and serializes documents back to bytes.
type Format interface {

	// Name is the unique name of the format.
	Name() string

	// Extensions are the file extensions of the format, without the
	// dot. The first one is used when writing.
	Extensions() []string

	// Parse parses the bytes of a file into its root asset. Sub-assets
	// are registered on the load context.
	Parse(data []byte, lc *LoadContext) (any, error)

	// Serialize encodes a document in the native encoding of the format.
	Serialize(doc Document) ([]byte, error)
}

// LoadContext is passed to [Format.Parse].
type LoadContext struct {

	// Path is the path of the file being parsed.
	Path Path

	labeled ordmap.Map[string, any]
}

// AddLabeled registers a sub-asset under the given label and returns
// its handle. Sub-assets become loaded together with the file.
func (lc *LoadContext) AddLabeled(label string, a any) Handle {
	lc.labeled.Add(label, a)
	return Handle{path: lc.Path.WithLabel(label)}
}

// Formats is the registry of formats keyed by name and extension.
type Formats struct {
	mu     sync.RWMutex
	byName ordmap.Map[string, Format]
	byExt  map[string]Format
}

// NewFormats returns a registry with the given formats.
func NewFormats(fmts ...Format) *Formats {
	fr := &Formats{byExt: make(map[string]Format)}
	for _, f := range fmts {
		fr.Add(f)
	}
	return fr
}

// Add registers a format under its name and all of its extensions.
func (fr *Formats) Add(f Format) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.byName.Add(f.Name(), f)
	for _, ext := range f.Extensions() {
		fr.byExt[strings.ToLower(ext)] = f
	}
}

// ByName returns the format with the given name.
func (fr *Formats) ByName(name string) (Format, bool) {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	return fr.byName.ValueByKeyTry(name)
}

// ForPath returns the format registered for the extension of the path.
func (fr *Formats) ForPath(p Path) (Format, error) {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	f, ok := fr.byExt[p.Ext()]
	if !ok {
		return nil, errors.Errorf(errors.KindFormat, p.String(), "no format registered for extension %q", p.Ext())
	}
	return f, nil
}

// Names returns the registered format names in registration order.
func (fr *Formats) Names() []string {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	return fr.byName.Keys()
}
