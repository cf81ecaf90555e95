// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics provides Prometheus counters for the asset pipeline.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the Prometheus namespace of all pipeline metrics.
const Namespace = "xyzasset"

// Metrics holds the pipeline counters.
type Metrics struct {
	// Resolved counts documents handed to the materializer, by document type.
	Resolved *prometheus.CounterVec

	// Materialized counts nodes created by materialization.
	Materialized prometheus.Counter

	// LoadFailures counts requests dropped because their load failed.
	LoadFailures prometheus.Counter

	// JointsBound counts joint specs resolved into bindings.
	JointsBound prometheus.Counter

	// Colliders counts derived collision shapes, by shape keyword.
	Colliders *prometheus.CounterVec

	// Assemblies counts assembly requests, by result:
	// "written", "failed" or "dropped".
	Assemblies *prometheus.CounterVec

	// Reloads counts assets reloaded after their files changed.
	Reloads prometheus.Counter
}

// New returns pipeline metrics registered on the given registerer.
// A nil registerer leaves the metrics unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "documents_resolved_total",
			Help:      "Documents handed to the materializer, by document type.",
		}, []string{"type"}),
		Materialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_materialized_total",
			Help:      "Nodes created by materialization.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "load_failures_total",
			Help:      "Requests dropped because their load failed.",
		}),
		JointsBound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "joints_bound_total",
			Help:      "Joint specs resolved into bindings.",
		}),
		Colliders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "colliders_derived_total",
			Help:      "Derived collision shapes, by shape keyword.",
		}, []string{"shape"}),
		Assemblies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "assemblies_total",
			Help:      "Assembly requests, by result.",
		}, []string{"result"}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "assets_reloaded_total",
			Help:      "Assets reloaded after their files changed.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Resolved, m.Materialized, m.LoadFailures, m.JointsBound, m.Colliders, m.Assemblies, m.Reloads} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// IncResolved counts a resolved document of the given type.
func (m *Metrics) IncResolved(typ string) {
	if m == nil {
		return
	}
	m.Resolved.WithLabelValues(typ).Inc()
}

// AddMaterialized counts n created nodes.
func (m *Metrics) AddMaterialized(n int) {
	if m == nil {
		return
	}
	m.Materialized.Add(float64(n))
}

// IncLoadFailure counts a failed load.
func (m *Metrics) IncLoadFailure() {
	if m == nil {
		return
	}
	m.LoadFailures.Inc()
}

// IncJointBound counts a bound joint.
func (m *Metrics) IncJointBound() {
	if m == nil {
		return
	}
	m.JointsBound.Inc()
}

// IncCollider counts a derived collider of the given shape.
func (m *Metrics) IncCollider(shape string) {
	if m == nil {
		return
	}
	m.Colliders.WithLabelValues(shape).Inc()
}

// IncAssembly counts an assembly request with the given result.
func (m *Metrics) IncAssembly(result string) {
	if m == nil {
		return
	}
	m.Assemblies.WithLabelValues(result).Inc()
}

// IncReload counts a reloaded asset.
func (m *Metrics) IncReload() {
	if m == nil {
		return
	}
	m.Reloads.Inc()
}
