// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline wires the asset systems into one schedule that is
// ticked once per frame: loading and materializing documents, rolling
// down tags, binding joints, deriving colliders, and assembling
// documents from live nodes.
package pipeline

import (
	"log/slog"
	"os"

	"cogentcore.org/xyzasset/assembly"
	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/config"
	"cogentcore.org/xyzasset/formats/model"
	"cogentcore.org/xyzasset/formats/urdf"
	"cogentcore.org/xyzasset/metrics"
	"cogentcore.org/xyzasset/physics/collider"
	"cogentcore.org/xyzasset/physics/joint"
	"cogentcore.org/xyzasset/scene"
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline is the set of services and systems of one world.
type Pipeline struct {
	Config    *config.Config
	World     *scene.World
	Schedule  *scene.Schedule
	Sources   *asset.Sources
	Formats   *asset.Formats
	Server    *asset.Server
	Resolver  *asset.Resolver
	Binder    *joint.Binder
	Colliders *collider.Approximator
	Collector *assembly.Collector

	// Watcher is set if the config enables watching.
	Watcher *asset.Watcher

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// New returns a pipeline for the given config, with the sources it
// configures. Metrics are registered on reg if the config enables
// them and reg is not nil.
func New(cf *config.Config, reg prometheus.Registerer) (*Pipeline, error) {
	srcs, err := cf.AssetSources()
	if err != nil {
		return nil, err
	}
	return NewWithSources(cf, srcs, reg)
}

// NewWithSources returns a pipeline for the given config and sources.
func NewWithSources(cf *config.Config, srcs *asset.Sources, reg prometheus.Registerer) (*Pipeline, error) {
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	lv, _ := cf.Level()
	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
	if !cf.Metrics {
		reg = nil
	}
	mt, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}
	pl := &Pipeline{Config: cf, Sources: srcs, Metrics: mt}
	pl.World = scene.NewWorld()
	pl.Schedule = scene.NewSchedule(pl.World)
	pl.Formats = asset.NewFormats(urdf.Format{}, model.JSON{}, model.Binary{})
	pl.Server = asset.NewServer(srcs, pl.Formats, cf.LoadWorkers)
	pl.Resolver = asset.NewResolver(pl.Schedule, pl.Server)
	pl.Resolver.Metrics = mt
	pl.Binder = &joint.Binder{Metrics: mt}
	pl.Colliders = &collider.Approximator{Server: pl.Server, Metrics: mt}
	pl.Collector = assembly.NewCollector(srcs, pl.Server, cf.WriteWorkers)
	pl.Collector.Metrics = mt
	pl.SetLogger(lg)
	pl.Binder.Install(pl.Schedule)
	pl.Colliders.Install(pl.Schedule)
	pl.Collector.Install(pl.Schedule)
	if cf.Watch {
		pl.Watcher, err = asset.NewWatcher(pl.Server, lg, mt)
		if err != nil {
			return nil, err
		}
	}
	return pl, nil
}

// Close stops the watcher, if any.
func (pl *Pipeline) Close() error {
	if pl.Watcher == nil {
		return nil
	}
	return pl.Watcher.Close()
}

// SetLogger sets the logger of the pipeline and all of its systems.
func (pl *Pipeline) SetLogger(lg *slog.Logger) {
	pl.Logger = lg
	if pl.Resolver != nil {
		pl.Resolver.Logger = lg
	}
	if pl.Binder != nil {
		pl.Binder.Logger = lg
	}
	if pl.Colliders != nil {
		pl.Colliders.Logger = lg
	}
	if pl.Collector != nil {
		pl.Collector.Logger = lg
	}
	if pl.Watcher != nil {
		pl.Watcher.Logger = lg
	}
}

// Tick runs every system once and applies their commands.
func (pl *Pipeline) Tick() {
	pl.Schedule.Tick()
}

// Wait blocks until pending loads and started writes are done.
// It is for tests and tools; frames should only call [Pipeline.Tick].
func (pl *Pipeline) Wait() {
	pl.Server.Wait()
	pl.Collector.Wait()
}

// Load queues a new node that requests the document of type D at the
// given path, in the assets source unless it names another source.
func Load[D asset.Document](pl *Pipeline, path string, bundle ...any) (scene.NodeID, error) {
	p, err := asset.ParsePath(path, asset.SourceAssets)
	if err != nil {
		return 0, err
	}
	return asset.Stage[D](pl.Resolver, p, bundle...), nil
}

// Save queues the assembly of a document from the named group and the
// selected nodes, to be written to dest, such as "saves://robots/car".
func Save[P any](pl *Pipeline, cm assembly.Composer[P], group string, selected []scene.NodeID, dest string, params P) {
	assembly.Enqueue(pl.Collector, cm, group, selected, dest, params)
}

// LoadFailures returns and clears the load failures since the last call.
func (pl *Pipeline) LoadFailures() []asset.LoadFailed {
	return pl.Resolver.Failed.Drain()
}

// Completed returns and clears the assemblies written since the last call.
func (pl *Pipeline) Completed() []assembly.Completed {
	return pl.Collector.Done.Drain()
}
