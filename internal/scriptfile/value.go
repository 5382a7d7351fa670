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
	"math/big"

	"github.com/consensys/cscript/pkg/value"
	"github.com/holiman/uint256"
)

// wireValue is the JSON shape of a value.Value literal. Only the field
// matching Kind is populated; U128/U256 are carried as decimal strings
// since JSON numbers are not safe beyond 53 bits. Array/Optional/Range
// elements recurse through wireValue; Struct carries its registered type id
// and name alongside positional field values (field names are not part of
// value.StructData, so the struct's own declared order is what resolves
// them back to a layout at evaluation time, not at decode time).
type wireValue struct {
	Kind     string      `json:"kind"`
	Bool     bool        `json:"bool,omitempty"`
	Number   string      `json:"number,omitempty"`
	Str      string      `json:"str,omitempty"`
	Elems    []wireValue `json:"elems,omitempty"`
	ElemType *wireType   `json:"elem_type,omitempty"`
	StructID uint32      `json:"struct_id,omitempty"`
	Struct   string      `json:"struct_name,omitempty"`
	Fields   []wireValue `json:"fields,omitempty"`
	Some     *wireValue  `json:"some,omitempty"`
	Start    *wireValue  `json:"start,omitempty"`
	End      *wireValue  `json:"end,omitempty"`
}

func encodeValue(v value.Value) (wireValue, error) {
	switch v.Kind() {
	case value.KindNull:
		return wireValue{Kind: "null"}, nil
	case value.KindBool:
		b, _ := v.AsBool()
		return wireValue{Kind: "bool", Bool: b}, nil
	case value.KindU8:
		n, _ := v.AsU8()
		return wireValue{Kind: "u8", Number: fmt.Sprint(n)}, nil
	case value.KindU16:
		n, _ := v.AsU16()
		return wireValue{Kind: "u16", Number: fmt.Sprint(n)}, nil
	case value.KindU32:
		n, _ := v.AsU32()
		return wireValue{Kind: "u32", Number: fmt.Sprint(n)}, nil
	case value.KindU64:
		n, _ := v.AsU64()
		return wireValue{Kind: "u64", Number: fmt.Sprint(n)}, nil
	case value.KindU128:
		n, _ := v.AsU128()
		return wireValue{Kind: "u128", Number: n.ToBig().String()}, nil
	case value.KindU256:
		n, _ := v.AsU256()
		return wireValue{Kind: "u256", Number: n.String()}, nil
	case value.KindString:
		s, _ := v.AsString()
		return wireValue{Kind: "string", Str: s}, nil
	case value.KindArray:
		cells, _ := v.AsArray()
		elems := make([]wireValue, len(cells))

		for i, c := range cells {
			w, err := encodeValue(c.Handle().Value())
			if err != nil {
				return wireValue{}, err
			}

			elems[i] = w
		}

		elemType := encodeType(v.ArrayElemType())

		return wireValue{Kind: "array", Elems: elems, ElemType: &elemType}, nil
	case value.KindStruct:
		strct, _ := v.AsStruct()
		fields := make([]wireValue, len(strct.Fields))

		for i, c := range strct.Fields {
			w, err := encodeValue(c.Handle().Value())
			if err != nil {
				return wireValue{}, err
			}

			fields[i] = w
		}

		return wireValue{Kind: "struct", StructID: strct.TypeID, Struct: strct.TypeName, Fields: fields}, nil
	case value.KindOptional:
		elemType := encodeType(v.OptionalElemType())

		cell, some := v.AsOptional()
		if !some {
			return wireValue{Kind: "optional", ElemType: &elemType}, nil
		}

		inner, err := encodeValue(cell.Handle().Value())
		if err != nil {
			return wireValue{}, err
		}

		return wireValue{Kind: "optional", ElemType: &elemType, Some: &inner}, nil
	case value.KindRange:
		rng, _ := v.AsRange()

		start, err := encodeValue(rng.Start)
		if err != nil {
			return wireValue{}, err
		}

		end, err := encodeValue(rng.End)
		if err != nil {
			return wireValue{}, err
		}

		elemType := encodeType(rng.Elem)

		return wireValue{Kind: "range", Start: &start, End: &end, ElemType: &elemType}, nil
	default:
		return wireValue{}, fmt.Errorf("scriptfile: unhandled value kind %v", v.Kind())
	}
}

func decodeValue(w wireValue) (value.Value, error) {
	switch w.Kind {
	case "null":
		return value.Null(), nil
	case "bool":
		return value.NewBool(w.Bool), nil
	case "u8":
		n, err := parseUint(w.Number, 8)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewU8(uint8(n)), nil
	case "u16":
		n, err := parseUint(w.Number, 16)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewU16(uint16(n)), nil
	case "u32":
		n, err := parseUint(w.Number, 32)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewU32(uint32(n)), nil
	case "u64":
		n, err := parseUint(w.Number, 64)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewU64(n), nil
	case "u128":
		b, ok := new(big.Int).SetString(w.Number, 10)
		if !ok {
			return value.Value{}, fmt.Errorf("scriptfile: invalid u128 literal %q", w.Number)
		}

		return value.NewU128(value.U128FromBig(b)), nil
	case "u256":
		n, err := uint256.FromDecimal(w.Number)
		if err != nil {
			return value.Value{}, fmt.Errorf("scriptfile: invalid u256 literal %q: %w", w.Number, err)
		}

		return value.NewU256(n), nil
	case "string":
		return value.NewString(w.Str), nil
	case "array":
		if w.ElemType == nil {
			return value.Value{}, fmt.Errorf("scriptfile: array value missing elem_type")
		}

		elemType, err := decodeType(*w.ElemType)
		if err != nil {
			return value.Value{}, err
		}

		elems := make([]value.Value, len(w.Elems))

		for i, e := range w.Elems {
			v, err := decodeValue(e)
			if err != nil {
				return value.Value{}, err
			}

			elems[i] = v
		}

		return value.NewArray(elemType, elems)
	case "struct":
		fields := make([]value.Value, len(w.Fields))

		for i, f := range w.Fields {
			v, err := decodeValue(f)
			if err != nil {
				return value.Value{}, err
			}

			fields[i] = v
		}

		return value.NewStruct(w.StructID, w.Struct, fields), nil
	case "optional":
		if w.ElemType == nil {
			return value.Value{}, fmt.Errorf("scriptfile: optional value missing elem_type")
		}

		elemType, err := decodeType(*w.ElemType)
		if err != nil {
			return value.Value{}, err
		}

		if w.Some == nil {
			return value.NewOptionalNone(elemType), nil
		}

		inner, err := decodeValue(*w.Some)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewOptionalSome(inner), nil
	case "range":
		if w.Start == nil || w.End == nil || w.ElemType == nil {
			return value.Value{}, fmt.Errorf("scriptfile: range value missing start/end/elem_type")
		}

		start, err := decodeValue(*w.Start)
		if err != nil {
			return value.Value{}, err
		}

		end, err := decodeValue(*w.End)
		if err != nil {
			return value.Value{}, err
		}

		elemType, err := decodeType(*w.ElemType)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewRange(start, end, elemType)
	default:
		return value.Value{}, fmt.Errorf("scriptfile: unknown value kind %q", w.Kind)
	}
}

func parseUint(s string, bits int) (uint64, error) {
	var n uint64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("scriptfile: invalid integer literal %q: %w", s, err)
	}

	if bits < 64 && n >= (uint64(1)<<uint(bits)) {
		return 0, fmt.Errorf("scriptfile: literal %q overflows u%d", s, bits)
	}

	return n, nil
}

func marshalValue(v value.Value) ([]byte, error) {
	w, err := encodeValue(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(w)
}

func unmarshalValue(data []byte) (value.Value, error) {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return value.Value{}, err
	}

	return decodeValue(w)
}
