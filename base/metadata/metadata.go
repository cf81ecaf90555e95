// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata holds free-form key/value data, such as the
// "extras" of model containers, with typed access to its values.
package metadata

import (
	"fmt"
	"strings"
)

// Data is free-form metadata keyed by name.
type Data map[string]any

// Set sets key to value, creating the map if needed.
func (md *Data) Set(key string, value any) {
	if *md == nil {
		*md = make(map[string]any)
	}
	(*md)[key] = value
}

// Get returns the value of key as a T. It is an error if the key is
// missing or holds another type.
func Get[T any](md Data, key string) (T, error) {
	var z T
	x, ok := md[key]
	if !ok {
		return z, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return z, fmt.Errorf("key %q is %T, not %T", key, x, z)
	}
	return v, nil
}

// GetFold is like [Get], but falls back to a case-insensitive match
// of the key. Exporters disagree on the case of extras keys.
func GetFold[T any](md Data, key string) (T, error) {
	if _, ok := md[key]; ok {
		return Get[T](md, key)
	}
	for k := range md {
		if strings.EqualFold(k, key) {
			return Get[T](md, k)
		}
	}
	var z T
	return z, fmt.Errorf("key %q not found in metadata", key)
}
