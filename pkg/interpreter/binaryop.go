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

// evalBinaryOp dispatches ast.BinaryOp, grounded on the Operator arm of
// execute_expression in original_source/src/interpreter/mod.rs, with two
// corrections the named scenarios in spec.md require:
//
//  1. The reference evaluator's plain (non-assignment) Plus case is
//     unreachable for a String operand: its number-type guard
//     (`!left.is_number() && op.is_number_operator()`) rejects both operands
//     before the string-concatenation branch below it ever runs, and unlike
//     the assignment guard it carries no `String` carve-out. spec.md's own
//     Plus description ("if either side is a String, performs string
//     concatenation") requires plain `+` to concatenate, so the string check
//     here runs before the numeric guard, not after it.
//  2. Plain arithmetic (`+`, `-`, `*`, `/`, `<<`, `>>`) and their compound
//     forms use the same overflow-checked family: both dispatch through
//     add!/sub!/mul!/div!/shl!/shr! in original_source, and spec.md's named
//     overflow scenario uses plain `+`. Modulo and the bitwise
//     and/or/xor operators can't overflow at a fixed width, so they keep
//     using the plain (wrapping, here purely nominal) arithmetic helpers for
//     both plain and compound forms, matching original_source's use of bare
//     `%`/`^`/`&`/`|` in both places.
func (e *Evaluator) evalBinaryOp(ctx *Context, receiver *value.Value, ex *ast.BinaryOp) (value.Value, error) {
	if ex.Op.IsAssignment() {
		return e.evalAssignment(ctx, receiver, ex)
	}

	if ex.Op.IsShortCircuit() {
		return e.evalShortCircuit(ctx, ex)
	}

	left, err := e.evalExpression(ctx, nil, ex.Left)
	if err != nil {
		return value.Value{}, err
	}

	right, err := e.evalExpression(ctx, nil, ex.Right)
	if err != nil {
		return value.Value{}, err
	}

	leftType, rightType := left.GetType(), right.GetType()

	switch ex.Op {
	case ast.Equals:
		return value.NewBool(leftType.Equal(rightType) && left.Equal(right)), nil
	case ast.NotEquals:
		return value.NewBool(!leftType.Equal(rightType) || !left.Equal(right)), nil
	case ast.Plus:
		if leftType.Kind() == types.String || rightType.Kind() == types.String {
			return value.NewString(left.ToDisplayString() + right.ToDisplayString()), nil
		}

		if err := requireSameNumericType(left, right); err != nil {
			return value.Value{}, err
		}

		return left.AddChecked(right)
	}

	if err := requireSameNumericType(left, right); err != nil {
		return value.Value{}, err
	}

	switch ex.Op {
	case ast.Minus:
		return left.SubChecked(right)
	case ast.Multiply:
		return left.MulChecked(right)
	case ast.Divide:
		return left.Div(right)
	case ast.Modulo:
		return left.Mod(right)
	case ast.Power:
		return left.PowChecked(right)
	case ast.BitwiseAnd:
		return left.And(right)
	case ast.BitwiseOr:
		return left.Or(right)
	case ast.BitwiseXor:
		return left.Xor(right)
	case ast.BitwiseLeft:
		shift, err := valueToShift(right)
		if err != nil {
			return value.Value{}, err
		}

		return left.ShlChecked(shift)
	case ast.BitwiseRight:
		shift, err := valueToShift(right)
		if err != nil {
			return value.Value{}, err
		}

		return left.ShrChecked(shift)
	case ast.GreaterThan, ast.GreaterOrEqual, ast.LessThan, ast.LessOrEqual:
		cmp, err := left.Cmp(right)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewBool(compareOp(ex.Op, cmp)), nil
	default:
		return value.Value{}, vmerrors.New(vmerrors.UnexpectedOperator)
	}
}

func compareOp(op ast.Operator, cmp int) bool {
	switch op {
	case ast.GreaterThan:
		return cmp > 0
	case ast.GreaterOrEqual:
		return cmp >= 0
	case ast.LessThan:
		return cmp < 0
	case ast.LessOrEqual:
		return cmp <= 0
	default:
		return false
	}
}

func requireSameNumericType(left, right value.Value) error {
	if !left.IsNumber() || !right.IsNumber() {
		return vmerrors.New(vmerrors.OperationNotNumberType)
	}

	if !left.GetType().Equal(right.GetType()) {
		return vmerrors.NewOperationNotSameType(left.GetType(), right.GetType())
	}

	return nil
}

// evalShortCircuit evaluates And/Or, only evaluating the right operand when
// the left one leaves the result undecided.
func (e *Evaluator) evalShortCircuit(ctx *Context, ex *ast.BinaryOp) (value.Value, error) {
	leftVal, err := e.evalExpression(ctx, nil, ex.Left)
	if err != nil {
		return value.Value{}, err
	}

	left, err := leftVal.AsBool()
	if err != nil {
		return value.Value{}, err
	}

	if ex.Op == ast.And {
		if !left {
			return value.NewBool(false), nil
		}

		rightVal, err := e.evalExpression(ctx, nil, ex.Right)
		if err != nil {
			return value.Value{}, err
		}

		right, err := rightVal.AsBool()
		if err != nil {
			return value.Value{}, err
		}

		return value.NewBool(right), nil
	}

	if left {
		return value.NewBool(true), nil
	}

	rightVal, err := e.evalExpression(ctx, nil, ex.Right)
	if err != nil {
		return value.Value{}, err
	}

	right, err := rightVal.AsBool()
	if err != nil {
		return value.Value{}, err
	}

	return value.NewBool(right), nil
}

// evalAssignment evaluates Right, then resolves Left as a mutable path, and
// writes the (possibly operator-combined) result back through the path.
// Writing through Shareable-promoted sub-paths (see resolvePath) is what
// makes the write observable through any outer container the path descended
// from.
func (e *Evaluator) evalAssignment(ctx *Context, receiver *value.Value, ex *ast.BinaryOp) (value.Value, error) {
	rhs, err := e.evalExpression(ctx, nil, ex.Right)
	if err != nil {
		return value.Value{}, err
	}

	path, err := e.resolvePath(ctx, receiver, ex.Left)
	if err != nil {
		return value.Value{}, err
	}

	current := path.AsRef()
	currentType, rhsType := current.GetType(), rhs.GetType()

	if !currentType.Equal(rhsType) {
		return value.Value{}, vmerrors.NewOperationNotSameType(currentType, rhsType)
	}

	var newVal value.Value

	switch ex.Op {
	case ast.Assign:
		newVal = rhs

	case ast.AssignPlus:
		if currentType.Kind() == types.String {
			newVal = value.NewString(current.ToDisplayString() + rhs.ToDisplayString())
			break
		}

		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.AddChecked(rhs)

	case ast.AssignMinus:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.SubChecked(rhs)

	case ast.AssignMultiply:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.MulChecked(rhs)

	case ast.AssignDivide:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.Div(rhs)

	case ast.AssignModulo:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.Mod(rhs)

	case ast.AssignPower:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.PowChecked(rhs)

	case ast.AssignBitwiseAnd:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.And(rhs)

	case ast.AssignBitwiseOr:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.Or(rhs)

	case ast.AssignBitwiseXor:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		newVal, err = current.Xor(rhs)

	case ast.AssignBitwiseLeft:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		var shift uint

		shift, err = valueToShift(rhs)
		if err == nil {
			newVal, err = current.ShlChecked(shift)
		}

	case ast.AssignBitwiseRight:
		if err := requireSameNumericType(current, rhs); err != nil {
			return value.Value{}, err
		}

		var shift uint

		shift, err = valueToShift(rhs)
		if err == nil {
			newVal, err = current.ShrChecked(shift)
		}

	default:
		return value.Value{}, vmerrors.New(vmerrors.UnexpectedOperator)
	}

	if err != nil {
		return value.Value{}, err
	}

	h := path.AsMut()
	h.Set(newVal)
	h.Release()

	// Assignment expressions yield no value (mirrors the reference
	// evaluator's Option::None); callers that need this distinguished from
	// an explicit Null result should check ex.Op.IsAssignment() on the AST
	// node directly (see the For statement's Post-expression validation)
	// rather than inspecting the returned Value.
	return value.Null(), nil
}
