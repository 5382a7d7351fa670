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

// Param is one declared function parameter.
type Param struct {
	Name string
	Type types.Type
}

// StructDecl is a program-declared struct type: field order here is the
// positional order value.StructData.Fields must follow.
type StructDecl struct {
	Name       string
	FieldNames []string
	FieldTypes []types.Type
}

// ConstantDecl is a program-level constant, registered into the outermost
// evaluator scope before any function runs.
type ConstantDecl struct {
	Name  string
	Type  types.Type
	Value Expression
}

// Function is a single function declaration, native or program-defined share
// this shape (see env.NativeFunction for the native side). ForType, when
// set, makes this a receiver method; InstanceName then names the binding
// Body sees for the receiver value. IsEntry marks a function callable from
// outside the program (CallEntryFunction); an entry function may not also
// declare ForType (an entry function can't be a receiver method, since there
// is no instance to call it through from the host).
type Function struct {
	Name         string
	ForType      *types.Type
	InstanceName string
	Params       []Param
	Body         []Statement
	IsEntry      bool
	ReturnType   *types.Type
}

// Program is a whole parsed unit: its struct/constant/function declarations.
// Functions may be resolved by name+arity+receiver the same way
// env.Registry.GetFunction resolves native ones; program functions take
// precedence over native ones of the same name (see env.Registry.GetFunction).
type Program struct {
	Structs   []StructDecl
	Constants []ConstantDecl
	Functions []Function
}

// EntryFunction returns the first function named name whose IsEntry is true,
// or false if none matches (wraps up the function-entry validation done in
// the original call_entry_function: resolve by name, then require IsEntry).
func (p *Program) EntryFunction(name string) (*Function, bool) {
	for i := range p.Functions {
		if p.Functions[i].Name == name && p.Functions[i].IsEntry {
			return &p.Functions[i], true
		}
	}

	return nil, false
}
