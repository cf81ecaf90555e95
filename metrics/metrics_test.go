// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.IncResolved("urdf")
	m.IncResolved("urdf")
	m.AddMaterialized(3)
	m.IncCollider("cuboid")
	m.IncAssembly("written")
	m.IncReload()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Resolved.WithLabelValues("urdf")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Materialized))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Colliders.WithLabelValues("cuboid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Assemblies.WithLabelValues("written")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reloads))

	_, err = New(reg)
	assert.Error(t, err, "second registration must fail")
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncResolved("x")
		m.AddMaterialized(1)
		m.IncLoadFailure()
		m.IncJointBound()
		m.IncCollider("convex")
		m.IncAssembly("failed")
		m.IncReload()
	})
}
