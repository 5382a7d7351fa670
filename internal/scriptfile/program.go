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
package scriptfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/cscript/pkg/ast"
	"github.com/consensys/cscript/pkg/types"
)

type wireParam struct {
	Name string   `json:"name"`
	Type wireType `json:"type"`
}

type wireStructDecl struct {
	Name       string     `json:"name"`
	FieldNames []string   `json:"field_names"`
	FieldTypes []wireType `json:"field_types"`
}

type wireConstantDecl struct {
	Name  string         `json:"name"`
	Type  wireType       `json:"type"`
	Value wireExpression `json:"value"`
}

type wireFunction struct {
	Name         string          `json:"name"`
	ForType      *wireType       `json:"for_type,omitempty"`
	InstanceName string          `json:"instance_name,omitempty"`
	Params       []wireParam     `json:"params"`
	Body         []wireStatement `json:"body"`
	IsEntry      bool            `json:"is_entry,omitempty"`
	ReturnType   *wireType       `json:"return_type,omitempty"`
}

type wireProgram struct {
	Structs   []wireStructDecl   `json:"structs,omitempty"`
	Constants []wireConstantDecl `json:"constants,omitempty"`
	Functions []wireFunction     `json:"functions"`
}

func encodeParam(p ast.Param) wireParam {
	return wireParam{Name: p.Name, Type: encodeType(p.Type)}
}

func decodeParam(w wireParam) (ast.Param, error) {
	t, err := decodeType(w.Type)
	if err != nil {
		return ast.Param{}, err
	}

	return ast.Param{Name: w.Name, Type: t}, nil
}

func encodeStructDecl(s ast.StructDecl) wireStructDecl {
	fieldTypes := make([]wireType, len(s.FieldTypes))
	for i, t := range s.FieldTypes {
		fieldTypes[i] = encodeType(t)
	}

	return wireStructDecl{Name: s.Name, FieldNames: s.FieldNames, FieldTypes: fieldTypes}
}

func decodeStructDecl(w wireStructDecl) (ast.StructDecl, error) {
	fieldTypes := make([]types.Type, len(w.FieldTypes))

	for i, t := range w.FieldTypes {
		decoded, err := decodeType(t)
		if err != nil {
			return ast.StructDecl{}, err
		}

		fieldTypes[i] = decoded
	}

	return ast.StructDecl{Name: w.Name, FieldNames: w.FieldNames, FieldTypes: fieldTypes}, nil
}

func encodeConstantDecl(c ast.ConstantDecl) (wireConstantDecl, error) {
	val, err := encodeExpression(c.Value)
	if err != nil {
		return wireConstantDecl{}, err
	}

	return wireConstantDecl{Name: c.Name, Type: encodeType(c.Type), Value: val}, nil
}

func decodeConstantDecl(w wireConstantDecl) (ast.ConstantDecl, error) {
	t, err := decodeType(w.Type)
	if err != nil {
		return ast.ConstantDecl{}, err
	}

	val, err := decodeExpression(w.Value)
	if err != nil {
		return ast.ConstantDecl{}, err
	}

	return ast.ConstantDecl{Name: w.Name, Type: t, Value: val}, nil
}

func encodeFunction(f ast.Function) (wireFunction, error) {
	params := make([]wireParam, len(f.Params))
	for i, p := range f.Params {
		params[i] = encodeParam(p)
	}

	body, err := encodeStatements(f.Body)
	if err != nil {
		return wireFunction{}, err
	}

	w := wireFunction{
		Name:         f.Name,
		InstanceName: f.InstanceName,
		Params:       params,
		Body:         body,
		IsEntry:      f.IsEntry,
	}

	if f.ForType != nil {
		t := encodeType(*f.ForType)
		w.ForType = &t
	}

	if f.ReturnType != nil {
		t := encodeType(*f.ReturnType)
		w.ReturnType = &t
	}

	return w, nil
}

func decodeFunction(w wireFunction) (ast.Function, error) {
	params := make([]ast.Param, len(w.Params))

	for i, p := range w.Params {
		decoded, err := decodeParam(p)
		if err != nil {
			return ast.Function{}, err
		}

		params[i] = decoded
	}

	body, err := decodeStatements(w.Body)
	if err != nil {
		return ast.Function{}, err
	}

	f := ast.Function{
		Name:         w.Name,
		InstanceName: w.InstanceName,
		Params:       params,
		Body:         body,
		IsEntry:      w.IsEntry,
	}

	if w.ForType != nil {
		t, err := decodeType(*w.ForType)
		if err != nil {
			return ast.Function{}, err
		}

		f.ForType = &t
	}

	if w.ReturnType != nil {
		t, err := decodeType(*w.ReturnType)
		if err != nil {
			return ast.Function{}, err
		}

		f.ReturnType = &t
	}

	return f, nil
}

func encodeProgram(p *ast.Program) (wireProgram, error) {
	structs := make([]wireStructDecl, len(p.Structs))
	for i, s := range p.Structs {
		structs[i] = encodeStructDecl(s)
	}

	constants := make([]wireConstantDecl, len(p.Constants))

	for i, c := range p.Constants {
		w, err := encodeConstantDecl(c)
		if err != nil {
			return wireProgram{}, err
		}

		constants[i] = w
	}

	functions := make([]wireFunction, len(p.Functions))

	for i, f := range p.Functions {
		w, err := encodeFunction(f)
		if err != nil {
			return wireProgram{}, err
		}

		functions[i] = w
	}

	return wireProgram{Structs: structs, Constants: constants, Functions: functions}, nil
}

func decodeProgram(w wireProgram) (*ast.Program, error) {
	structs := make([]ast.StructDecl, len(w.Structs))

	for i, s := range w.Structs {
		decoded, err := decodeStructDecl(s)
		if err != nil {
			return nil, err
		}

		structs[i] = decoded
	}

	constants := make([]ast.ConstantDecl, len(w.Constants))

	for i, c := range w.Constants {
		decoded, err := decodeConstantDecl(c)
		if err != nil {
			return nil, err
		}

		constants[i] = decoded
	}

	functions := make([]ast.Function, len(w.Functions))

	for i, f := range w.Functions {
		decoded, err := decodeFunction(f)
		if err != nil {
			return nil, err
		}

		functions[i] = decoded
	}

	return &ast.Program{Structs: structs, Constants: constants, Functions: functions}, nil
}

// Marshal encodes a whole program to its JSON wire form.
func Marshal(p *ast.Program) ([]byte, error) {
	w, err := encodeProgram(p)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(w, "", "  ")
}

// Unmarshal decodes a program from its JSON wire form.
func Unmarshal(data []byte) (*ast.Program, error) {
	var w wireProgram
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("scriptfile: %w", err)
	}

	return decodeProgram(w)
}

// Load reads and decodes a program from a JSON file on disk, the entry
// point cmd/cscript uses in place of a real parser front end.
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scriptfile: reading %s: %w", path, err)
	}

	return Unmarshal(data)
}

// Save encodes a program and writes it to path, overwriting any existing
// file (mode 0o644, matching cmd/main.go's own output file handling).
func Save(path string, p *ast.Program) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scriptfile: writing %s: %w", path, err)
	}

	return nil
}
