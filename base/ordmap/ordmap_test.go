// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	var om Map[string, int]
	om.Add("saves", 3)
	om.Add("assets", 1)
	om.Add("saves", 4)

	assert.Equal(t, 2, om.Len())
	assert.Equal(t, []string{"saves", "assets"}, om.Keys())
	assert.Equal(t, []int{4, 1}, om.Values())

	v, ok := om.ValueByKeyTry("assets")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = om.ValueByKeyTry("packages")
	assert.False(t, ok)

	var nilmap *Map[string, int]
	assert.Equal(t, 0, nilmap.Len())
}
