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

// Package scriptfile is the JSON (de)serialization of a pkg/ast.Program: the
// stand-in for the out-of-scope lexer/parser, grounded on cmd/main.go's own
// encoding/json.Unmarshal of a raw constraint file into a concrete Go
// struct. Every AST/Type/Value variant gets a small "kind"-tagged wire
// struct; the encode*/decode* functions converting to and from the wire
// types are where the tag switch lives, kept separate from pkg/ast and pkg/value so neither package needs to know
// about JSON at all.
package scriptfile

import (
	"encoding/json"
	"fmt"

	"github.com/consensys/cscript/pkg/types"
)

// wireType is the JSON shape of a types.Type: Kind names the variant
// ("u8", "array", "struct", ...), Inner recurses for Array/Optional/Range,
// and StructID/StructName carry a Struct type's registered identity.
type wireType struct {
	Kind       string    `json:"kind"`
	Inner      *wireType `json:"inner,omitempty"`
	StructID   uint32    `json:"struct_id,omitempty"`
	StructName string    `json:"struct_name,omitempty"`
}

func encodeType(t types.Type) wireType {
	w := wireType{Kind: t.Kind().String()}

	switch t.Kind() {
	case types.Array, types.Optional, types.Range:
		inner := encodeType(t.Inner())
		w.Inner = &inner
	case types.Struct:
		w.StructID = t.StructID()
		w.StructName = t.String()
	}

	return w
}

func decodeType(w wireType) (types.Type, error) {
	kind, ok := typeKindByName[w.Kind]
	if !ok {
		return types.Type{}, fmt.Errorf("scriptfile: unknown type kind %q", w.Kind)
	}

	switch kind {
	case types.Array, types.Optional, types.Range:
		if w.Inner == nil {
			return types.Type{}, fmt.Errorf("scriptfile: %s type missing inner type", w.Kind)
		}

		inner, err := decodeType(*w.Inner)
		if err != nil {
			return types.Type{}, err
		}

		switch kind {
		case types.Array:
			return types.NewArray(inner), nil
		case types.Optional:
			return types.NewOptional(inner), nil
		default:
			return types.NewRange(inner), nil
		}
	case types.Struct:
		return types.NewStruct(w.StructID, w.StructName), nil
	default:
		return types.NewPrimitive(kind), nil
	}
}

var typeKindByName = map[string]types.Kind{
	types.Any.String():      types.Any,
	types.T.String():        types.T,
	types.U8.String():       types.U8,
	types.U16.String():      types.U16,
	types.U32.String():      types.U32,
	types.U64.String():      types.U64,
	types.U128.String():     types.U128,
	types.U256.String():     types.U256,
	types.Bool.String():     types.Bool,
	types.String.String():   types.String,
	types.Struct.String():   types.Struct,
	types.Array.String():    types.Array,
	types.Optional.String(): types.Optional,
	types.Range.String():    types.Range,
	types.Unknown.String(): types.Unknown,
}

// marshalType and unmarshalType (de)serialize a bare types.Type through the
// same wireType encoding, for callers that hold a types.Type rather than a
// wireType (the type round-trip test; wireFunction itself uses encodeType).
func marshalType(t types.Type) ([]byte, error) { return json.Marshal(encodeType(t)) }

func unmarshalType(data []byte) (types.Type, error) {
	var w wireType
	if err := json.Unmarshal(data, &w); err != nil {
		return types.Type{}, err
	}

	return decodeType(w)
}
