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
	"github.com/consensys/cscript/pkg/env"
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

// Evaluator walks an ast.Program's function bodies against a value.Path-
// backed scope stack. It owns the two gas-like counters the data model
// requires: countExpr (every statement and expression evaluated, checked
// against maxExpr) and recursive (current call depth, checked against
// maxRecursive), mirroring the reference interpreter's State.count_expr and
// State.recursive fields, kept here as plain struct fields since Go has no
// need for Rust's RefCell to mutate them through a shared reference.
type Evaluator struct {
	program  *ast.Program
	registry *env.Registry

	constants []constantBinding

	maxExpr      uint64
	maxRecursive uint16

	countExpr uint64
	recursive uint16
}

type constantBinding struct {
	name string
	val  value.Value
}

// NewEvaluator registers program's structs and functions into registry
// (which may already carry native functions/structs from pkg/stdlib),
// evaluates every constant declaration once against a throwaway root
// Context, and returns an Evaluator ready to run CallEntryFunction. maxExpr
// of 0 means unlimited; likewise maxRecursive of 0.
func NewEvaluator(program *ast.Program, maxExpr uint64, maxRecursive uint16, registry *env.Registry) (*Evaluator, error) {
	e := &Evaluator{
		program:      program,
		registry:     registry,
		maxExpr:      maxExpr,
		maxRecursive: maxRecursive,
	}

	for _, s := range program.Structs {
		if _, err := registry.AddProgramStruct(s.Name, s.FieldNames, s.FieldTypes); err != nil {
			return nil, err
		}
	}

	for i := range program.Functions {
		fn := &program.Functions[i]
		if fn.IsEntry && fn.ForType != nil {
			return nil, vmerrors.NewFunctionEntry(false, true)
		}

		registry.AddProgramFunction(e.wrapProgramFunction(fn))
	}

	for _, c := range program.Constants {
		ctx := NewContext()

		v, err := e.evalExpression(ctx, nil, c.Value)
		if err != nil {
			return nil, err
		}

		e.constants = append(e.constants, constantBinding{name: c.Name, val: v})
	}

	return e, nil
}

// wrapProgramFunction adapts an ast.Function into an env.NativeFunction
// whose Callback re-enters the statement executor. Routing program
// functions through the SAME env.Registry.GetFunction resolution algorithm
// used for native ones (rather than giving the interpreter its own,
// duplicate name/arity/receiver matching logic) is a deliberate departure
// from a literal line-for-line port: it still preserves the reference
// behaviour that program functions resolve before native ones, since
// env.Registry.GetFunction searches the program functions in a first pass
// and the native ones in a second.
func (e *Evaluator) wrapProgramFunction(fn *ast.Function) env.NativeFunction {
	paramTypes := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = p.Type
	}

	return env.NativeFunction{
		Name:       fn.Name,
		ForType:    fn.ForType,
		ParamTypes: paramTypes,
		ReturnType: fn.ReturnType,
		Callback: func(receiver value.Value, args []value.Value) (value.Value, error) {
			return e.executeFunction(fn, receiver, args)
		},
	}
}

// newRootContext builds a fresh Context with scope 0 seeded by the
// program's constants, per spec.md's resolution of an incomplete
// constant-persistence path in the reference evaluator: constants live in
// the bottom scope of every Context, not in a separate, never-consulted
// store.
func (e *Evaluator) newRootContext() *Context {
	ctx := NewContext()

	for _, c := range e.constants {
		// Constant names are not checked for uniqueness: if two constants
		// share a name, the second RegisterVariable fails with
		// VariableAlreadyExists, the error is discarded, and the first
		// declaration's binding is the one kept.
		_ = ctx.RegisterVariable(c.name, value.NewOwnedPath(c.val.Clone()))
	}

	return ctx
}

// incrementExpr advances the expression/statement counter, failing with
// LimitReached once maxExpr is hit (0 disables the check). Mirrors
// increment_expr.
func (e *Evaluator) incrementExpr() error {
	if e.maxExpr != 0 && e.countExpr >= e.maxExpr {
		return vmerrors.New(vmerrors.LimitReached)
	}

	e.countExpr++

	return nil
}

// CallEntryFunction resolves name as a program entry function and invokes
// it with args, coercing the result to a u64 exit code. FunctionEntry if
// name does not resolve to an entry function; NoExitCode if the function
// returns no value.
func (e *Evaluator) CallEntryFunction(name string, args []value.Value) (uint64, error) {
	fn, ok := e.program.EntryFunction(name)
	if !ok {
		return 0, vmerrors.NewFunctionEntry(true, false)
	}

	result, err := e.executeFunction(fn, value.Null(), args)
	if err != nil {
		return 0, err
	}

	if result.IsNull() {
		return 0, vmerrors.New(vmerrors.NoExitCode)
	}

	coerced, err := result.CastTo(types.NewPrimitive(types.U64))
	if err != nil {
		return 0, err
	}

	n, err := coerced.AsU64()
	if err != nil {
		return 0, err
	}

	return n, nil
}
