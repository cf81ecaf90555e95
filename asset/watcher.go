// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asset

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/xyzasset/metrics"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the assets of directory sources when their files
// change on disk. Only files the [Server] has already loaded are
// reloaded; entities materialized from them are left as they are.
// The fields are set by [NewWatcher] and must not change afterwards.
type Watcher struct {
	Server  *Server
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	watch *fsnotify.Watcher
	roots []watchRoot
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
	err   error
}

type watchRoot struct {
	source string
	dir    string
}

// NewWatcher starts watching every directory source of the server,
// including all of its subdirectories. A nil logger uses the default
// one, and mt may be nil. Call [Watcher.Close] to stop.
func NewWatcher(srv *Server, lg *slog.Logger, mt *metrics.Metrics) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if lg == nil {
		lg = slog.Default()
	}
	wt := &Watcher{Server: srv, Metrics: mt, Logger: lg, watch: fw, done: make(chan struct{})}
	for _, name := range srv.Sources.Names() {
		src, ok := srv.Sources.Source(name)
		if !ok || src.Dir == "" {
			continue
		}
		if err := wt.addTree(src.Dir); err != nil {
			fw.Close()
			return nil, err
		}
		wt.roots = append(wt.roots, watchRoot{source: name, dir: src.Dir})
	}
	wt.wg.Add(1)
	go wt.run()
	return wt, nil
}

// addTree adds dir and its subdirectories to the watcher; fsnotify
// does not watch recursively.
func (wt *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return wt.watch.Add(p)
		}
		return nil
	})
}

func (wt *Watcher) run() {
	defer wt.wg.Done()
	for {
		select {
		case <-wt.done:
			return
		case ev, ok := <-wt.watch.Events:
			if !ok {
				return
			}
			wt.handle(ev)
		case err, ok := <-wt.watch.Errors:
			if !ok {
				return
			}
			wt.Logger.Warn("asset watcher", "err", err)
		}
	}
}

func (wt *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := wt.addTree(ev.Name); err != nil {
				wt.Logger.Warn("asset watcher: cannot watch new directory", "dir", ev.Name, "err", err)
			}
			return
		}
	}
	for _, p := range wt.paths(ev.Name) {
		if wt.Server.Reload(p) {
			wt.Logger.Info("reloading changed asset", "path", p.String())
			wt.Metrics.IncReload()
		}
	}
}

// paths returns the asset paths of the given file in every source
// whose directory contains it.
func (wt *Watcher) paths(file string) []Path {
	var ps []Path
	for _, r := range wt.roots {
		rel, err := filepath.Rel(r.dir, file)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		ps = append(ps, Path{Source: r.source, Rel: filepath.ToSlash(rel)})
	}
	return ps
}

// Close stops watching. It is safe to call more than once.
func (wt *Watcher) Close() error {
	wt.once.Do(func() {
		close(wt.done)
		wt.err = wt.watch.Close()
		wt.wg.Wait()
	})
	return wt.err
}
