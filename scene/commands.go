// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "reflect"

// Commands is the deferred mutation queue of a [World]. Commands are
// applied in issuance order at one fixed point per tick, so systems
// never mutate the node graph while another system iterates it.
// Component values of existing nodes may still be edited in place
// through [Get].
type Commands struct {
	w     *World
	queue []func(w *World)
}

// Spawn reserves a node id and queues the creation of the node with
// the given components. The id is usable in later commands right away,
// but the node is not [World.Alive] until the queue is applied.
func (c *Commands) Spawn(bundle ...any) NodeID {
	id := c.w.reserve()
	c.queue = append(c.queue, func(w *World) {
		w.spawnReserved(id, bundle)
	})
	return id
}

// Insert queues adding the given components to the node.
func (c *Commands) Insert(id NodeID, comps ...any) {
	c.queue = append(c.queue, func(w *World) {
		if w.Alive(id) {
			w.Insert(id, comps...)
		}
	})
}

// Remove queues removing the component of the given type from the node.
func (c *Commands) Remove(id NodeID, t reflect.Type) {
	c.queue = append(c.queue, func(w *World) {
		w.RemoveType(id, t)
	})
}

// SetParent queues adding a parent edge.
func (c *Commands) SetParent(child, parent NodeID) {
	c.queue = append(c.queue, func(w *World) {
		if w.Alive(child) && w.Alive(parent) {
			w.SetParent(child, parent)
		}
	})
}

// Despawn queues removing the node and its subtree.
func (c *Commands) Despawn(id NodeID) {
	c.queue = append(c.queue, func(w *World) {
		w.Despawn(id)
	})
}

// Do queues an arbitrary mutation.
func (c *Commands) Do(fun func(w *World)) {
	c.queue = append(c.queue, fun)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Apply runs all queued commands in order and empties the queue.
// Commands queued while applying run in the same call.
func (c *Commands) Apply() {
	for i := 0; i < len(c.queue); i++ {
		c.queue[i](c.w)
	}
	c.queue = c.queue[:0]
}

// RemoveLater queues removing the component of type T from the node.
func RemoveLater[T any](c *Commands, id NodeID) {
	c.Remove(id, reflect.TypeFor[T]())
}
