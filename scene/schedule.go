// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"reflect"

	"cogentcore.org/xyzasset/base/ordmap"
)

// Stage orders groups of systems within a tick.
type Stage int32

const (
	// StageResolve runs the per-document-type resolvers and the
	// materialization that follows a completed load.
	StageResolve Stage = iota

	// StagePropagate runs roll-down propagation, strictly after
	// materialization.
	StagePropagate

	// StageBind resolves joints by name.
	StageBind

	// StageCollide derives collision shapes.
	StageCollide

	// StageAssemble runs the assembly collector.
	StageAssemble

	// StagesN is the number of stages.
	StagesN
)

// System is run once per tick.
type System func(w *World)

// Schedule runs systems in stage order once per tick and then applies
// the deferred commands. Systems are keyed by a type identity so that
// a system for a given component type is installed at most once, which
// lets per-type systems be installed lazily the first time the type
// is encountered.
type Schedule struct {
	World *World

	stages [StagesN]ordmap.Map[reflect.Type, System]

	// Ticks is the number of completed ticks.
	Ticks int
}

// NewSchedule returns a new schedule for the given world.
func NewSchedule(w *World) *Schedule {
	return &Schedule{World: w}
}

// Ensure installs the system made by mk under the given key and
// stage unless a system with that key is already installed anywhere.
// It returns true if it installed a new system.
func (sc *Schedule) Ensure(stage Stage, key reflect.Type, mk func() System) bool {
	if sc.Installed(key) {
		return false
	}
	sc.stages[stage].Add(key, mk())
	return true
}

// Installed returns whether a system with the given key is installed.
func (sc *Schedule) Installed(key reflect.Type) bool {
	for i := range sc.stages {
		if _, ok := sc.stages[i].ValueByKeyTry(key); ok {
			return true
		}
	}
	return false
}

// NumSystems returns the number of installed systems.
func (sc *Schedule) NumSystems() int {
	n := 0
	for i := range sc.stages {
		n += sc.stages[i].Len()
	}
	return n
}

// Tick runs every installed system once, in stage order and then
// installation order, and applies the queued commands. Systems
// installed during a tick first run on the next tick.
func (sc *Schedule) Tick() {
	var run []System
	for i := range sc.stages {
		run = append(run, sc.stages[i].Values()...)
	}
	for _, sys := range run {
		sys(sc.World)
	}
	sc.World.Commands().Apply()
	sc.Ticks++
}
