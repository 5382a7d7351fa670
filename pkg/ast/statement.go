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

import "github.com/consensys/cscript/pkg/types"

// Statement is a single node in a function body. If/ElseIf/Else are flat
// siblings in the enclosing block (not nested): the evaluator tracks an
// accept_else latch across a statement list, set by a false If/ElseIf
// condition and cleared by anything other than an immediately following
// ElseIf/Else, mirroring the chain of `if`/`elif`/`else` as the source
// language actually parses it (not as three nested Go if-statements).
type Statement interface {
	isStatement()
}

// VariableDecl declares Name with the given static Type, binding Value's
// result to it in the current scope.
type VariableDecl struct {
	Name  string
	Type  types.Type
	Value Expression
}

func (*VariableDecl) isStatement() {}

// If runs Body in a fresh scope when Condition is true; otherwise it opens
// the accept_else window for a following ElseIf/Else.
type If struct {
	Condition Expression
	Body      []Statement
}

func (*If) isStatement() {}

// ElseIf only runs (and only evaluates Condition) if the accept_else window
// from the immediately preceding If/ElseIf is open.
type ElseIf struct {
	Condition Expression
	Body      []Statement
}

func (*ElseIf) isStatement() {}

// Else only runs if the accept_else window from the immediately preceding
// If/ElseIf is open.
type Else struct {
	Body []Statement
}

func (*Else) isStatement() {}

// For is a C-style loop: Init declares the loop variable once in a scope
// that wraps the whole loop, Condition is checked before every iteration,
// and Post must be an assignment expression (evaluating to no value).
type For struct {
	Init      *VariableDecl
	Condition Expression
	Post      Expression
	Body      []Statement
}

func (*For) isStatement() {}

// ForEach iterates Iterable's elements, binding each to Name (in a scope
// wrapping the whole loop) for the duration of Body.
type ForEach struct {
	Name     string
	Iterable Expression
	Body     []Statement
}

func (*ForEach) isStatement() {}

// While repeats Body while Condition holds, both checked and run in a scope
// wrapping the whole loop.
type While struct {
	Condition Expression
	Body      []Statement
}

func (*While) isStatement() {}

// Return exits the enclosing function. Value is nil for a bare `return;`.
type Return struct {
	Value Expression
}

func (*Return) isStatement() {}

// Break exits the nearest enclosing loop.
type Break struct{}

func (*Break) isStatement() {}

// Continue skips to the next iteration of the nearest enclosing loop.
type Continue struct{}

func (*Continue) isStatement() {}

// Scope is a bare `{ ... }` block: runs Body in a fresh scope with no
// looping or branching semantics of its own.
type Scope struct {
	Body []Statement
}

func (*Scope) isStatement() {}

// ExpressionStatement evaluates Expr and discards any result (used for bare
// assignments and function calls made for their side effects).
type ExpressionStatement struct {
	Expr Expression
}

func (*ExpressionStatement) isStatement() {}
