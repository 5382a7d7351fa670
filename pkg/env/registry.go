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

// Package env implements cscript's name registry and native-function
// catalog: the host-supplied Environment (native functions plus native
// struct layouts) and the layered name mapper the evaluator uses to resolve
// both. Structured the way the original manager/environment split its
// concerns: a generic layered id-mapper for names, and a thin Environment
// holding the actual native catalog.
package env

import (
	"fmt"

	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/sirupsen/logrus"
)

// NameMapper maps names to dense ids, optionally extending a parent mapper:
// a lookup checks this layer first and falls back to the parent only on a
// miss, so a name registered in a child layer hides the same name in the
// parent. Registering a name already present in the SAME layer (not the
// parent) is a NameAlreadyUsed error; that restriction does not apply
// across layers.
type NameMapper struct {
	parent *NameMapper
	ids    map[string]uint32
	names  []string
}

// NewNameMapper constructs a root mapper with no parent.
func NewNameMapper() *NameMapper {
	return &NameMapper{ids: make(map[string]uint32)}
}

// NewChildNameMapper constructs a mapper layered on top of parent: IDs
// allocated here continue the parent's numbering so that a combined id
// space is still dense.
func NewChildNameMapper(parent *NameMapper) *NameMapper {
	return &NameMapper{parent: parent, ids: make(map[string]uint32)}
}

// Register allocates a new id for name in this layer. Fails with
// NameAlreadyUsed if name is already registered in THIS layer (a parent
// layer registering the same name is not a conflict: child names extend,
// they do not need to avoid, the parent's namespace).
func (m *NameMapper) Register(name string) (uint32, error) {
	if _, ok := m.ids[name]; ok {
		return 0, vmerrors.NewNameAlreadyUsed(name)
	}

	id := uint32(m.baseLen() + len(m.names))
	m.ids[name] = id
	m.names = append(m.names, name)

	return id, nil
}

func (m *NameMapper) baseLen() int {
	if m.parent == nil {
		return 0
	}

	return m.parent.baseLen() + len(m.parent.names)
}

// Lookup resolves name to its id, checking this layer then the parent
// chain.
func (m *NameMapper) Lookup(name string) (uint32, bool) {
	if id, ok := m.ids[name]; ok {
		return id, true
	}

	if m.parent != nil {
		return m.parent.Lookup(name)
	}

	return 0, false
}

// HasName reports whether name is registered in this layer or any parent.
func (m *NameMapper) HasName(name string) bool {
	_, ok := m.Lookup(name)
	return ok
}

// StructLayout is a registered struct type's declared shape: field names in
// declaration order (positional, matching value.StructData.Fields) and
// their declared types.
type StructLayout struct {
	ID         uint32
	Name       string
	FieldNames []string
	FieldTypes []types.Type
}

// FieldIndex returns the positional index of a declared field, or -1.
func (s *StructLayout) FieldIndex(name string) int {
	for i, n := range s.FieldNames {
		if n == name {
			return i
		}
	}

	return -1
}

// NativeFunction is a host-supplied function: same signature shape as a
// user-defined one, except its body is an opaque Go callback instead of an
// AST. ForType, when set, makes this a receiver method (e.g. String.len());
// Callback receives the bound receiver (value.Null() if ForType is unset)
// and the already-evaluated argument values.
type NativeFunction struct {
	Name         string
	ForType      *types.Type
	ParamTypes   []types.Type
	ReturnType   *types.Type
	EstimatedGas uint64
	Callback     func(receiver value.Value, args []value.Value) (value.Value, error)
}

// Registry holds a native (host) registration pass and a program
// registration pass. Functions registered by the program may coexist
// alongside native ones of the same name (method-style overloads are
// resolved by arity/receiver/parameter type, not by name alone). Structs
// are not layered: native and program structs share one NameMapper and one
// layout list, so any struct name already registered, native or program,
// is rejected with StructNameAlreadyUsed, and a program struct cannot reuse
// a native struct's name.
type Registry struct {
	structMapper *NameMapper

	nativeFuncs []NativeFunction
	progFuncs   []NativeFunction // program-declared functions are stored in the same shape post-registration

	structs []*StructLayout
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		structMapper: NewNameMapper(),
	}
}

// AddNativeFunction registers a native function. Native functions are not
// name-uniqueness checked against each other (overloading by
// arity/receiver/parameter type is expected, e.g. multiple Array<T>.push
// instantiations), only structs enforce per-layer name uniqueness.
func (r *Registry) AddNativeFunction(f NativeFunction) {
	r.nativeFuncs = append(r.nativeFuncs, f)
}

// AddNativeStruct registers a native struct layout. Fails with
// StructNameAlreadyUsed if any struct (native or program) already has the
// name.
func (r *Registry) AddNativeStruct(name string, fieldNames []string, fieldTypes []types.Type) (*StructLayout, error) {
	if r.structMapper.HasName(name) {
		return nil, vmerrors.NewStructNameAlreadyUsed(name)
	}

	id, err := r.structMapper.Register(name)
	if err != nil {
		return nil, vmerrors.NewStructNameAlreadyUsed(name)
	}

	layout := &StructLayout{ID: id, Name: name, FieldNames: fieldNames, FieldTypes: fieldTypes}
	r.structs = append(r.structs, layout)

	return layout, nil
}

// AddProgramFunction registers a program-declared function. Resolution
// order is program first, then native (see GetFunction), matching the
// original interpreter's
// `program.functions.iter().chain(env.get_functions())`.
func (r *Registry) AddProgramFunction(f NativeFunction) {
	r.progFuncs = append(r.progFuncs, f)
}

// AddProgramStruct registers a program-declared struct layout. It is the
// same operation as AddNativeStruct: the layout goes into the shared struct
// name space and takes the next id after every struct registered before it.
func (r *Registry) AddProgramStruct(name string, fieldNames []string, fieldTypes []types.Type) (*StructLayout, error) {
	return r.AddNativeStruct(name, fieldNames, fieldTypes)
}

// GetStructByName resolves a struct layout by name.
func (r *Registry) GetStructByName(name string) (*StructLayout, error) {
	for _, s := range r.structs {
		if s.Name == name {
			return s, nil
		}
	}

	return nil, vmerrors.NewStructureNotFound(name)
}

// GetStructByID resolves a struct layout by id.
func (r *Registry) GetStructByID(id uint32) (*StructLayout, error) {
	for _, s := range r.structs {
		if s.ID == id {
			return s, nil
		}
	}

	return nil, vmerrors.NewStructureNotFound("")
}

// GetFunction resolves a function by name, optional receiver type, and
// already-typed argument list. Program functions are searched before
// native ones; within each pass, a candidate matches if the name and arity
// match, the receiver type is compatible (both absent, or present and
// IsCompatibleWith), and every argument type IsCompatibleWith the
// corresponding declared parameter type. The first match wins.
func (r *Registry) GetFunction(name string, forType *types.Type, argTypes []types.Type) (*NativeFunction, error) {
	if f := findFunction(r.progFuncs, name, forType, argTypes); f != nil {
		return f, nil
	}

	if f := findFunction(r.nativeFuncs, name, forType, argTypes); f != nil {
		return f, nil
	}

	logrus.WithField("function", name).Debug("env: function resolution failed")

	return nil, vmerrors.NewFunctionNotFound(name, toStringerSlice(argTypes))
}

func toStringerSlice(ts []types.Type) []fmt.Stringer {
	out := make([]fmt.Stringer, len(ts))
	for i, t := range ts {
		out[i] = t
	}

	return out
}

func findFunction(fns []NativeFunction, name string, forType *types.Type, argTypes []types.Type) *NativeFunction {
funcs:
	for i := range fns {
		f := &fns[i]

		if f.Name != name || len(f.ParamTypes) != len(argTypes) {
			continue
		}

		switch {
		case forType != nil && f.ForType != nil:
			if !forType.IsCompatibleWith(*f.ForType) {
				continue
			}
		case forType == nil && f.ForType == nil:
			// both absent: match
		default:
			continue
		}

		for j, pt := range f.ParamTypes {
			if !argTypes[j].IsCompatibleWith(pt) {
				continue funcs
			}
		}

		return f
	}

	return nil
}
