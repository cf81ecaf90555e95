// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"io/fs"
	"path"
	"strings"

	"cogentcore.org/xyzasset/base/errors"
)

// Path is a reference to an asset of the form
// <source>://<relative-path>[#label]. The label addresses a sub-asset
// registered by the format that parsed the file, such as one node or
// mesh inside a model container.
type Path struct {
	Source string
	Rel    string
	Label  string
}

// ParsePath parses a path reference. A reference without a scheme uses
// the given default source.
func ParsePath(s, defaultSource string) (Path, error) {
	var p Path
	src, rest, ok := strings.Cut(s, "://")
	if ok {
		p.Source = src
	} else {
		p.Source = defaultSource
		rest = s
	}
	rest, p.Label, _ = strings.Cut(rest, "#")
	p.Rel = path.Clean(strings.TrimPrefix(rest, "/"))
	if p.Source == "" {
		return p, errors.New(errors.KindSource, s, "no source name")
	}
	if !fs.ValidPath(p.Rel) || p.Rel == "." {
		return p, errors.New(errors.KindSource, s, "invalid relative path")
	}
	return p, nil
}

// MustParsePath is [ParsePath] for literal paths, panicking on error.
func MustParsePath(s string) Path {
	return errors.Must1(ParsePath(s, ""))
}

// String returns the path in <source>://<relative-path>[#label] form.
func (p Path) String() string {
	s := p.Source + "://" + p.Rel
	if p.Label != "" {
		s += "#" + p.Label
	}
	return s
}

// IsZero returns whether the path is unset.
func (p Path) IsZero() bool {
	return p == Path{}
}

// File returns the path without its label.
func (p Path) File() Path {
	p.Label = ""
	return p
}

// WithLabel returns the path of the sub-asset with the given label.
func (p Path) WithLabel(label string) Path {
	p.Label = label
	return p
}

// Ext returns the lower-case file extension of the path without the dot.
func (p Path) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p.Rel), "."))
}

// Base returns the file name of the path without its extension.
func (p Path) Base() string {
	b := path.Base(p.Rel)
	return strings.TrimSuffix(b, path.Ext(b))
}

// Resolve returns a path relative to this one: references with a
// scheme are parsed as is, others are taken relative to the
// directory of this path, within the same source.
func (p Path) Resolve(ref string) (Path, error) {
	if strings.Contains(ref, "://") {
		return ParsePath(ref, p.Source)
	}
	return ParsePath(path.Join(path.Dir(p.Rel), ref), p.Source)
}
