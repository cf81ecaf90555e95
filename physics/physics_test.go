// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyKind(t *testing.T) {
	for _, k := range []BodyKind{Dynamic, Fixed, Kinematic} {
		got, err := ParseBodyKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseBodyKind("Static")
	assert.NoError(t, err)
	assert.Equal(t, Fixed, got)
	_, err = ParseBodyKind("floaty")
	assert.Error(t, err)
}

func TestCollisionGroups(t *testing.T) {
	all := CollisionGroups{AllGroups, AllGroups}
	a := CollisionGroups{Memberships: 1, Filter: 2}
	b := CollisionGroups{Memberships: 2, Filter: 1}
	c := CollisionGroups{Memberships: 4, Filter: 4}
	assert.True(t, a.Interacts(b))
	assert.False(t, a.Interacts(c))
	assert.True(t, all.Interacts(c))
}
