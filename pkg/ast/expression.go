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
package ast

import (
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
)

// Expression is any node that the evaluator reduces to a value. One concrete
// type per variant, following the tagged-interface idiom pkg/corset uses for
// its own Expr tree (a marker method rather than a Kind enum). Go does not
// check type switches for exhaustiveness: a variant with no case reaches the
// switch's default branch, which in the evaluator and in
// internal/scriptfile returns an error rather than skipping the node.
type Expression interface {
	isExpression()
}

// Literal is a constant folded into the tree at build time.
type Literal struct {
	Value value.Value
}

func (*Literal) isExpression() {}

// Variable resolves Name against the current receiver (if any, see on_value
// in the evaluator) or the scope stack otherwise.
type Variable struct {
	Name string
}

func (*Variable) isExpression() {}

// ArrayCall indexes Array at Index (Index must evaluate to a numeric value).
type ArrayCall struct {
	Array Expression
	Index Expression
}

func (*ArrayCall) isExpression() {}

// Path chains a receiver expression into a field/method access on it
// (a.b, a.b(), a[0].b): Left is evaluated first and becomes the receiver
// (on_value) for evaluating Right.
type Path struct {
	Left  Expression
	Right Expression
}

func (*Path) isExpression() {}

// FunctionCall invokes Name with Args. When it appears as the Right side of
// a Path, the evaluator binds Left's value as the receiver; otherwise it is
// a free function call.
type FunctionCall struct {
	Name string
	Args []Expression
}

func (*FunctionCall) isExpression() {}

// ArrayConstructor builds an array literal from Elements, left to right.
type ArrayConstructor struct {
	Elements []Expression
}

func (*ArrayConstructor) isExpression() {}

// StructConstructor builds a StructName instance. FieldNames/FieldValues run
// in parallel (declaration order is not required at the call site; the
// evaluator matches each name against the registered struct layout).
type StructConstructor struct {
	StructName  string
	FieldNames  []string
	FieldValues []Expression
}

func (*StructConstructor) isExpression() {}

// IsNot is boolean negation (`!expr`).
type IsNot struct {
	Operand Expression
}

func (*IsNot) isExpression() {}

// Ternary is `cond ? left : right`; only the taken branch is evaluated.
type Ternary struct {
	Condition Expression
	Left      Expression
	Right     Expression
}

func (*Ternary) isExpression() {}

// BinaryOp applies Op to Left and Right: a pure binary comparison/arithmetic
// operator, or (when Op.IsAssignment()) an assignment whose Left must resolve
// to a Path.
type BinaryOp struct {
	Op    Operator
	Left  Expression
	Right Expression
}

func (*BinaryOp) isExpression() {}

// Cast truncating-casts Operand's value to Target (see value.CastTo).
type Cast struct {
	Operand Expression
	Target  types.Type
}

func (*Cast) isExpression() {}
