// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package value

// Cell is a composite value element: it may be owned inline, or promoted to
// a shared, interior-mutable form once something takes a long-lived alias
// into it (e.g. a nested path expression like a.b[3]). This is the "Shared
// Cell" of the data model: Go already garbage-collects, so there is no
// reference count to maintain by hand, but the aliasing discipline itself
// (two Cells observing the same storage after promotion) is the whole
// point and is modelled explicitly here, following the
// ValueOwnable::{Owned,Rc} split in the original interpreter.
//
// A Cell starts Owned. Transform promotes it in place to a shared box and
// returns a second Cell pointing at that same box; further Transform calls
// on either Cell just return another handle to the same box. The graph
// this produces is always a DAG: nothing exposed here lets a box point
// back into itself.
type Cell struct {
	shared *sharedBox
	owned  Value
}

type sharedBox struct {
	value Value
	// borrowed guards the dynamic single-writer discipline: a mutable
	// handle into a shared box must be released (by calling Release on the
	// MutHandle) before another mutable handle on the same box may be
	// acquired. Violating this nesting is a programmer error in the host
	// or evaluator and is not something a well-formed script can trigger,
	// so it fails fast via panic rather than returning an error.
	borrowed bool
}

// NewCell constructs a fresh Owned cell around v.
func NewCell(v Value) *Cell {
	return &Cell{owned: v}
}

// IsShared reports whether this cell has been promoted to the shared form.
func (c *Cell) IsShared() bool { return c.shared != nil }

// Transform promotes an Owned cell to a shared Rc-style cell in place and
// returns a clone handle pointing at the same storage; calling Transform on
// an already-shared cell just clones the handle.
func (c *Cell) Transform() *Cell {
	if c.shared == nil {
		c.shared = &sharedBox{value: c.owned}
		c.owned = Value{}
	}

	return &Cell{shared: c.shared}
}

// Handle is a read-only view into a cell's current value.
type Handle struct {
	cell *Cell
}

// Value returns the value currently held by the cell.
func (h Handle) Value() Value {
	if h.cell.shared != nil {
		return h.cell.shared.value
	}

	return h.cell.owned
}

// Handle produces a read view of the cell's current value.
func (c *Cell) Handle() Handle {
	return Handle{cell: c}
}

// MutHandle is a write view into a cell. For an Owned cell it is a direct
// borrow; for a shared cell it is a dynamic borrow that must be released
// (via Release) before another mutable handle on the same box is acquired.
type MutHandle struct {
	cell     *Cell
	released bool
}

// HandleMut acquires a write view of the cell's current value. Acquiring a
// second mutable handle on an already-borrowed shared cell without first
// releasing the first is a programmer error: it panics rather than
// returning an error, mirroring RefCell's own borrow_mut contract.
func (c *Cell) HandleMut() *MutHandle {
	if c.shared == nil {
		return &MutHandle{cell: c}
	}

	if c.shared.borrowed {
		panic("value: cell is already mutably borrowed")
	}

	c.shared.borrowed = true

	return &MutHandle{cell: c}
}

// Get reads the current value through the handle.
func (h *MutHandle) Get() Value {
	if h.cell.shared != nil {
		return h.cell.shared.value
	}

	return h.cell.owned
}

// Set writes a new value through the handle.
func (h *MutHandle) Set(v Value) {
	if h.cell.shared != nil {
		h.cell.shared.value = v
	} else {
		h.cell.owned = v
	}
}

// Release ends this mutable borrow, allowing a subsequent HandleMut call on
// a shared cell to succeed. Releasing an Owned-backed handle, or releasing
// twice, is a no-op.
func (h *MutHandle) Release() {
	if h.released {
		return
	}

	h.released = true

	if h.cell.shared != nil {
		h.cell.shared.borrowed = false
	}
}

// IntoOwned deep-materialises the cell's value, recursively resolving any
// nested cells it contains.
func (c *Cell) IntoOwned() Value {
	var v Value
	if c.shared != nil {
		v = c.shared.value
	} else {
		v = c.owned
	}

	return v.deepCopy()
}

// CloneCell returns a new cell sharing this cell's storage if it is already
// shared, or an independent deep copy if it is still owned. Used when a
// value is read (not aliased) out of a composite, e.g. array indexing that
// is not part of a path expression.
func (c *Cell) CloneCell() *Cell {
	if c.shared != nil {
		return &Cell{shared: c.shared}
	}

	return &Cell{owned: c.owned.deepCopy()}
}
