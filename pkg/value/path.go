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

import "github.com/consensys/cscript/pkg/vmerrors"

// PathKind tags a Path's variant.
type PathKind uint8

const (
	// PathOwned holds its storage exclusively; no other Path aliases it.
	PathOwned PathKind = iota
	// PathBorrowed points at a cell owned by someone else (a containing
	// array, struct, or an outer scope binding) without having promoted it
	// to the shared form. Reading is free; mutating a Borrowed path must
	// not be observed through the thing it was borrowed from, so AsMut
	// copies out first.
	PathBorrowed
	// PathWrapper points at a cell that has been promoted to the shared
	// form (via Transform): mutations through this Path ARE observed by
	// every other Path/Handle sharing the same cell.
	PathWrapper
)

// Path is a borrowable handle resolved at evaluation time: variable lookup
// and sub-field/index descent both produce one. It generalises
// ValueOwnable's Owned/Rc split to the three access patterns the evaluator
// needs: an exclusively-owned value, a read-only alias into someone else's
// storage, and a long-lived shared alias.
type Path struct {
	kind PathKind
	cell *Cell
}

// NewOwnedPath wraps v in a fresh, exclusively-owned Path.
func NewOwnedPath(v Value) Path {
	return Path{kind: PathOwned, cell: NewCell(v)}
}

// NewBorrowedPath produces a Path that aliases an existing cell without
// claiming ownership of it (e.g. descending into an array element or
// struct field during a read).
func NewBorrowedPath(c *Cell) Path {
	return Path{kind: PathBorrowed, cell: c}
}

// NewWrapperPath produces a Path backed by a cell already known to be (or
// about to become) shared.
func NewWrapperPath(c *Cell) Path {
	c.Transform()
	return Path{kind: PathWrapper, cell: c}
}

// Kind returns this path's variant tag.
func (p Path) Kind() PathKind { return p.kind }

// AsRef returns a read-only view of the value behind this path. Never
// mutates, never promotes.
func (p Path) AsRef() Value {
	return p.cell.Handle().Value()
}

// AsMut returns a write handle into this path, promoting it in place first
// if necessary: a Borrowed path is never mutated through its alias, so it
// is first deep-copied into an Owned cell (the path's kind becomes
// PathOwned as a side effect); an Owned or Wrapper path is mutated
// directly. Callers must Release the returned handle once done.
func (p *Path) AsMut() *MutHandle {
	if p.kind == PathBorrowed {
		p.cell = NewCell(p.cell.IntoOwned())
		p.kind = PathOwned
	}

	return p.cell.HandleMut()
}

// Shareable promotes an Owned or Borrowed path into a Wrapper, so the
// caller can retain a long-lived alias (e.g. binding a sub-path into a new
// scope variable) without Go's lack of borrow-checked lifetimes causing
// that alias to silently diverge from the original. A path already a
// Wrapper is returned unchanged.
func (p Path) Shareable() Path {
	if p.kind == PathWrapper {
		return p
	}

	shared := p.cell.Transform()

	return Path{kind: PathWrapper, cell: shared}
}

// GetSubVariable produces a Path into the i-th element of this path's
// current value: an array element, a struct field (in declared field
// order), or index 0 of a populated Optional's inner value. Returns
// OutOfBounds if i is not in range, or InvalidValue if the current value
// is not one of those container kinds.
func (p Path) GetSubVariable(i int) (Path, error) {
	v := p.AsRef()

	switch v.Kind() {
	case KindArray:
		if i < 0 || i >= len(v.arr) {
			return Path{}, vmerrors.NewOutOfBounds(i, len(v.arr))
		}

		return NewBorrowedPath(v.arr[i]), nil
	case KindStruct:
		if i < 0 || i >= len(v.strct.Fields) {
			return Path{}, vmerrors.NewOutOfBounds(i, len(v.strct.Fields))
		}

		return NewBorrowedPath(v.strct.Fields[i]), nil
	case KindOptional:
		if i != 0 || v.opt == nil {
			return Path{}, vmerrors.NewOutOfBounds(i, 0)
		}

		return NewBorrowedPath(v.opt), nil
	default:
		return Path{}, v.typeMismatch(arrayStringer{})
	}
}

// IntoOwned deep-materialises the value behind this path into a fresh,
// independent Value, following any nested cells it contains. It never
// mutates the path or anything it aliases.
func (p Path) IntoOwned() Value {
	return p.cell.IntoOwned()
}
