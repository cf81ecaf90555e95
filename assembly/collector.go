// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembly collects selected nodes into documents and writes
// them to a writable source in the background.
package assembly

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"cogentcore.org/xyzasset/asset"
	"cogentcore.org/xyzasset/metrics"
	"cogentcore.org/xyzasset/scene"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// Env is what a [Composer] may read while composing a document.
type Env struct {
	World  *scene.World
	Server *asset.Server
	Logger *slog.Logger
}

// Composer is a format that can compose a document from live nodes.
// P is the type of the parameters the format needs for that.
type Composer[P any] interface {
	asset.Format

	// Compose builds a document from the selected nodes.
	Compose(env *Env, selected []scene.NodeID, params P) (asset.Document, error)
}

// Completed is sent when an assembled document has been written.
type Completed struct {

	// BaseName is the file name without extension.
	BaseName string

	// Path is where the document was written.
	Path asset.Path

	// Format is the name of the format.
	Format string

	// Type is the type of the document.
	Type reflect.Type
}

type job struct {
	group    string
	selected []scene.NodeID
	dest     string
	format   asset.Format
	compose  func(env *Env, selected []scene.NodeID) (asset.Document, error)
}

type pending struct {
	task *Task
	done Completed
}

// Collector runs assembly requests: it composes the document from the
// requested group, and writes it on a background worker pool. Task
// completion is polled once per tick.
type Collector struct {
	Groups Groups

	// Done receives one event per written document.
	Done scene.Events[Completed]

	Sources *asset.Sources
	Server  *asset.Server
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	jobs    []job
	waiting []*pending
	running []*pending
	group   errgroup.Group
}

// NewCollector returns a collector writing to the given sources with
// at most workers concurrent writes.
func NewCollector(srcs *asset.Sources, srv *asset.Server, workers int) *Collector {
	c := &Collector{Sources: srcs, Server: srv, Logger: slog.Default()}
	if workers > 0 {
		c.group.SetLimit(workers)
	}
	return c
}

// Install installs the collector system on the schedule, once.
func (c *Collector) Install(sc *scene.Schedule) {
	sc.Ensure(scene.StageAssemble, reflect.TypeFor[*Collector](), func() scene.System {
		return c.Update
	})
}

// Enqueue requests that the named group, together with the given
// nodes, be composed into a document of format cm with the given
// parameters, and written to dest, which is a path without extension
// such as "saves://robots/car". The parameters are deep copied.
func Enqueue[P any](c *Collector, cm Composer[P], group string, selected []scene.NodeID, dest string, params P) {
	var cp P
	if err := copier.CopyWithOption(&cp, &params, copier.Option{DeepCopy: true}); err != nil {
		c.Logger.Warn("could not copy assembly parameters", "format", cm.Name(), "err", err)
		cp = params
	}
	c.jobs = append(c.jobs, job{
		group:    group,
		selected: selected,
		dest:     dest,
		format:   cm,
		compose: func(env *Env, sel []scene.NodeID) (asset.Document, error) {
			return cm.Compose(env, sel, cp)
		},
	})
}

// Pending returns the number of requests and tasks not finished yet.
func (c *Collector) Pending() int {
	return len(c.jobs) + len(c.waiting) + len(c.running)
}

// Update runs queued requests, starts their writes and polls the
// running writes.
func (c *Collector) Update(w *scene.World) {
	jobs := c.jobs
	c.jobs = nil
	for _, jb := range jobs {
		c.run(w, jb)
	}
	c.start()
	running := c.running[:0]
	for _, pd := range c.running {
		done, err := pd.task.Poll()
		switch {
		case !done:
			running = append(running, pd)
		case err != nil:
			c.Logger.Error("assembly write failed", "task", pd.task.ID, "path", pd.done.Path.String(), "err", err)
			c.Metrics.IncAssembly("failed")
		default:
			c.Done.Send(pd.done)
			c.Metrics.IncAssembly("written")
		}
	}
	c.running = running
}

func (c *Collector) run(w *scene.World, jb job) {
	p, err := c.destPath(jb)
	if err != nil {
		c.Logger.Error("assembly dropped", "dest", jb.dest, "format", jb.format.Name(), "err", err)
		c.Metrics.IncAssembly("dropped")
		return
	}
	sel := c.Groups.members(jb.group)
	for _, id := range jb.selected {
		if !slices.Contains(sel, id) {
			sel = append(sel, id)
		}
	}
	env := &Env{World: w, Server: c.Server, Logger: c.Logger}
	doc, err := jb.compose(env, sel)
	if err != nil {
		c.Logger.Error("assembly compose failed", "dest", jb.dest, "format", jb.format.Name(), "err", err)
		c.Metrics.IncAssembly("dropped")
		return
	}
	c.Groups.consume(jb.group)
	f := jb.format
	tk := newTask(func() error {
		b, err := f.Serialize(doc)
		if err != nil {
			return err
		}
		return c.Sources.Write(p, b)
	})
	c.waiting = append(c.waiting, &pending{task: tk, done: Completed{
		BaseName: p.Base(),
		Path:     p,
		Format:   f.Name(),
		Type:     reflect.TypeOf(doc),
	}})
}

// destPath returns the file path for the job, which must be in a
// writable source.
func (c *Collector) destPath(jb job) (asset.Path, error) {
	p, err := asset.ParsePath(jb.dest, "")
	if err != nil {
		return p, err
	}
	if !c.Sources.IsWritable(p.Source) {
		return p, fmt.Errorf("source %q is not registered for writing", p.Source)
	}
	exts := jb.format.Extensions()
	if len(exts) == 0 {
		return p, fmt.Errorf("format %q has no file extension", jb.format.Name())
	}
	if len(exts) > 1 {
		c.Logger.Warn("format has several extensions, writing with the first", "format", jb.format.Name(), "ext", exts[0])
	}
	p.Rel += "." + exts[0]
	p.Label = ""
	return p, nil
}

// start starts waiting writes while workers are free.
func (c *Collector) start() {
	for len(c.waiting) > 0 {
		pd := c.waiting[0]
		if !c.group.TryGo(func() error {
			pd.task.exec()
			return nil
		}) {
			return
		}
		c.waiting = c.waiting[1:]
		c.running = append(c.running, pd)
	}
}

// Wait blocks until all started writes are finished.
func (c *Collector) Wait() {
	c.group.Wait()
}
