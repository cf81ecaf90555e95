// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Events is a queue of events of one type, sent by a system and
// drained by whoever consumes them.
type Events[T any] struct {
	queue []T
}

// Send adds an event to the queue.
func (ev *Events[T]) Send(e T) {
	ev.queue = append(ev.queue, e)
}

// Len returns the number of pending events.
func (ev *Events[T]) Len() int {
	return len(ev.queue)
}

// Drain returns all pending events and empties the queue.
func (ev *Events[T]) Drain() []T {
	q := ev.queue
	ev.queue = nil
	return q
}
