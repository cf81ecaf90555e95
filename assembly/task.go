// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assembly

import (
	"github.com/google/uuid"
)

// Task is a background write of one assembled document.
type Task struct {
	ID uuid.UUID

	run  func() error
	done chan struct{}
	err  error
}

func newTask(run func() error) *Task {
	return &Task{ID: uuid.New(), run: run, done: make(chan struct{})}
}

func (tk *Task) exec() {
	tk.err = tk.run()
	close(tk.done)
}

// Poll returns whether the task is finished and, if so, its error.
// It never blocks.
func (tk *Task) Poll() (bool, error) {
	select {
	case <-tk.done:
		return true, tk.err
	default:
		return false, nil
	}
}
