// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides tagged errors for the asset pipeline
// along with helpers for logging errors and failing tests.
// It re-exports the standard library functions so that it can be
// used as a drop-in replacement for the errors package.
package errors

import (
	"errors"
	"fmt"
)

// Kind tags an [Error] with the failure category, which determines
// how the pipeline reacts to it.
type Kind int32

const (
	// KindParse is a container-parse failure. It is reported to the
	// caller and never retried.
	KindParse Kind = iota

	// KindMissing is a missing non-defaultable field, such as a source
	// document with no embedded parse tree. It aborts only that request.
	KindMissing

	// KindSource is an unknown or read-only path source.
	KindSource

	// KindFormat is a path whose extension has no registered format.
	KindFormat

	// KindIO is a failure reading or writing bytes.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindMissing:
		return "missing"
	case KindSource:
		return "source"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Error is a tagged error with the path it relates to.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// New returns a new tagged error with the given message.
func New(kind Kind, path, text string) error {
	return &Error{Kind: kind, Path: path, Err: errors.New(text)}
}

// Errorf returns a new tagged error with the given format and arguments.
func Errorf(kind Kind, path, format string, a ...any) error {
	return &Error{Kind: kind, Path: path, Err: fmt.Errorf(format, a...)}
}

// Wrap tags the given error. It returns nil if err is nil.
func Wrap(kind Kind, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first [Error] in the chain of err,
// and false if there is none.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// Is is [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Plain is [errors.New], for untagged sentinel errors.
func Plain(text string) error {
	return errors.New(text)
}
