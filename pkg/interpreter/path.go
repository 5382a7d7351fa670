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
package interpreter

import (
	"github.com/consensys/cscript/pkg/ast"
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

// resolvePath resolves expr as an assignment target, returning a long-lived
// mutable Path into the underlying storage. Grounded on get_from_path in
// original_source/src/interpreter/mod.rs, with one deliberate correction:
// the reference resolver re-derives its array-base recursion with no
// context (a side effect of Rust move semantics consuming the context while
// evaluating the index expression), which would make an indexed assignment
// into a bare scope variable (`a[1] = ...`, spec.md's array-aliasing
// scenario) fail to resolve. This port threads ctx through every recursive
// call instead, so a Variable node at any depth can still reach the scope
// stack.
//
// Every ArrayCall/Path/Variable-field descent promotes the sub-cell to
// PathWrapper via Shareable before returning it: GetSubVariable always hands
// back a Borrowed path (safe to read, but AsMut would silently copy-on-write
// and detach from the container), so Shareable must run first to make sure
// a later AsMut().Set() is observed through the original container. This is
// what makes `a[1] = a[0] + a[2]` mutate the same backing array `a` reads
// from afterwards.
func (e *Evaluator) resolvePath(ctx *Context, receiver *value.Value, expr ast.Expression) (*value.Path, error) {
	switch ex := expr.(type) {
	case *ast.ArrayCall:
		idxVal, err := e.evalExpression(ctx, nil, ex.Index)
		if err != nil {
			return nil, err
		}

		idx, err := valueToIndex(idxVal)
		if err != nil {
			return nil, err
		}

		base, err := e.resolvePath(ctx, receiver, ex.Array)
		if err != nil {
			return nil, err
		}

		sub, err := base.GetSubVariable(idx)
		if err != nil {
			return nil, err
		}

		sub = sub.Shareable()

		return &sub, nil

	case *ast.Path:
		left, err := e.resolvePath(ctx, receiver, ex.Left)
		if err != nil {
			return nil, err
		}

		leftVal := left.AsRef()

		return e.resolvePath(ctx, &leftVal, ex.Right)

	case *ast.Variable:
		if receiver != nil {
			return e.resolveFieldPath(*receiver, ex.Name)
		}

		return ctx.GetVariable(ex.Name)

	default:
		return nil, vmerrors.New(vmerrors.ExpectedPath)
	}
}

// resolveFieldPath resolves name as a field of the struct receiver, using
// the registry's struct layout to translate the field name to its
// positional index (value.StructData stores fields positionally, not by
// name).
func (e *Evaluator) resolveFieldPath(receiver value.Value, name string) (*value.Path, error) {
	strct, err := receiver.AsStruct()
	if err != nil {
		return nil, err
	}

	idx, err := e.structFieldIndex(strct, name)
	if err != nil {
		return nil, err
	}

	recvPath := value.NewOwnedPath(receiver)

	sub, err := recvPath.GetSubVariable(idx)
	if err != nil {
		return nil, err
	}

	sub = sub.Shareable()

	return &sub, nil
}

// valueToIndex coerces a numeric value to a non-negative int array/struct
// index, the way to_int() as usize does in the reference resolver.
func valueToIndex(v value.Value) (int, error) {
	n, err := valueToU64(v)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// valueToShift coerces a numeric value to a shift amount.
func valueToShift(v value.Value) (uint, error) {
	n, err := valueToU64(v)
	if err != nil {
		return 0, err
	}

	return uint(n), nil
}

func valueToU64(v value.Value) (uint64, error) {
	coerced, err := v.CastTo(types.NewPrimitive(types.U64))
	if err != nil {
		return 0, err
	}

	return coerced.AsU64()
}
