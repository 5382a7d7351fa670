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

// Package value implements cscript's runtime value representation: the
// tagged Value variant, the Shared Cell ownership/aliasing discipline
// (cell.go), the borrowable Path handle (path.go) and the truncating/
// checked cast families (cast.go). This is the universe of data the AST
// evaluator and, eventually, the bytecode VM operate over.
package value

import (
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Kind tags a Value's variant. Distinct from types.Kind: Null has no type
// counterpart (its static type is Unknown), and Any/T never appear on a
// runtime value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindString
	KindArray
	KindStruct
	KindOptional
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindU256:
		return "u256"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindOptional:
		return "optional"
	case KindRange:
		return "range"
	default:
		return "?"
	}
}

// StructData is the field storage of a Struct value: an ordered sequence of
// cells, positionally matching the declared field order of its struct
// type, tagged with that type's id.
type StructData struct {
	TypeID   uint32
	TypeName string
	Fields   []*Cell
}

// RangeData is a Range value: two primitive-numeric endpoints sharing an
// element type.
type RangeData struct {
	Start, End Value
	Elem       types.Type
}

// Value is the tagged runtime value. Exactly one of the typed fields is
// meaningful, selected by kind; container kinds (Array/Optional/Range) also
// carry the declared element type so that an empty array or a null
// optional still remembers what it was declared to hold.
type Value struct {
	kind Kind

	b    bool
	u8   uint8
	u16  uint16
	u32  uint32
	u64  uint64
	u128 U128
	u256 *uint256.Int
	str  string

	arr      []*Cell
	arrElem  types.Type
	strct    *StructData
	opt      *Cell // nil means None
	optElem  types.Type
	rng      *RangeData
}

// Null constructs the Null value.
func Null() Value { return Value{kind: KindNull} }

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewU8 constructs a U8 value.
func NewU8(n uint8) Value { return Value{kind: KindU8, u8: n} }

// NewU16 constructs a U16 value.
func NewU16(n uint16) Value { return Value{kind: KindU16, u16: n} }

// NewU32 constructs a U32 value.
func NewU32(n uint32) Value { return Value{kind: KindU32, u32: n} }

// NewU64 constructs a U64 value.
func NewU64(n uint64) Value { return Value{kind: KindU64, u64: n} }

// NewU128 constructs a U128 value.
func NewU128(n U128) Value { return Value{kind: KindU128, u128: n} }

// NewU256 constructs a U256 value. n is cloned defensively since
// *uint256.Int is mutable.
func NewU256(n *uint256.Int) Value {
	clone := new(uint256.Int).Set(n)
	return Value{kind: KindU256, u256: clone}
}

// NewString constructs a String value.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewArray constructs an Array value by wrapping each element in its own
// Owned cell. elemType is the declared element type; if it is the Unknown
// bottom type and elems is non-empty, the type of the first element is
// adopted instead (matching the "empty arrays are bottom-typed" rule: an
// explicit Unknown is only really bottom when there is nothing to infer
// from). Every element whose type is not Unknown must have that same type,
// or OperationNotSameType is returned (array elements all share one type,
// enforced at construction).
func NewArray(elemType types.Type, elems []Value) (Value, error) {
	if len(elems) == 0 {
		return Value{kind: KindArray, arr: nil, arrElem: elemType}, nil
	}

	effective := elemType
	if effective.Kind() == types.Unknown {
		effective = elems[0].GetType()
	}

	cells := make([]*Cell, 0, len(elems))

	for _, e := range elems {
		et := e.GetType()
		if et.Kind() != types.Unknown && !et.Equal(effective) {
			return Value{}, vmerrors.NewOperationNotSameType(et, effective)
		}

		cells = append(cells, NewCell(e))
	}

	return Value{kind: KindArray, arr: cells, arrElem: effective}, nil
}

// NewArrayFromCells constructs an Array value directly from pre-built
// cells, used when the evaluator is re-wrapping existing (possibly shared)
// cells rather than fresh values.
func NewArrayFromCells(elemType types.Type, cells []*Cell) Value {
	return Value{kind: KindArray, arr: cells, arrElem: elemType}
}

// NewStruct constructs a Struct value. The caller (the struct-constructor
// evaluator) is responsible for having already checked field presence,
// absence of extras, and per-field type equality against the declared
// struct layout; this constructor only wraps the already-validated,
// positionally-ordered field values.
func NewStruct(typeID uint32, typeName string, fields []Value) Value {
	cells := make([]*Cell, len(fields))
	for i, f := range fields {
		cells[i] = NewCell(f)
	}

	return Value{kind: KindStruct, strct: &StructData{TypeID: typeID, TypeName: typeName, Fields: cells}}
}

// NewOptionalSome constructs a populated Optional(v).
func NewOptionalSome(v Value) Value {
	return Value{kind: KindOptional, opt: NewCell(v), optElem: v.GetType()}
}

// NewOptionalNone constructs an empty Optional of the given element type.
func NewOptionalNone(elemType types.Type) Value {
	return Value{kind: KindOptional, opt: nil, optElem: elemType}
}

// NewRange constructs a Range value. Both invariants from the data model
// are enforced here: the endpoints must share elemType, and elemType must
// be numeric.
func NewRange(start, end Value, elemType types.Type) (Value, error) {
	if !elemType.IsNumber() {
		return Value{}, vmerrors.NewInvalidType(elemType)
	}

	if !start.GetType().Equal(elemType) || !end.GetType().Equal(elemType) {
		return Value{}, vmerrors.NewInvalidType(elemType)
	}

	return Value{kind: KindRange, rng: &RangeData{Start: start, End: end, Elem: elemType}}, nil
}

// Kind returns this value's variant tag.
func (v Value) Kind() Kind { return v.kind }

// GetType returns the static type of this value. Per the data model, Null
// and empty arrays/optionals with no recorded element type report Unknown.
func (v Value) GetType() types.Type {
	switch v.kind {
	case KindNull:
		return types.NewPrimitive(types.Unknown)
	case KindBool:
		return types.NewPrimitive(types.Bool)
	case KindU8:
		return types.NewPrimitive(types.U8)
	case KindU16:
		return types.NewPrimitive(types.U16)
	case KindU32:
		return types.NewPrimitive(types.U32)
	case KindU64:
		return types.NewPrimitive(types.U64)
	case KindU128:
		return types.NewPrimitive(types.U128)
	case KindU256:
		return types.NewPrimitive(types.U256)
	case KindString:
		return types.NewPrimitive(types.String)
	case KindArray:
		return types.NewArray(v.arrElem)
	case KindStruct:
		return types.NewStruct(v.strct.TypeID, v.strct.TypeName)
	case KindOptional:
		return types.NewOptional(v.optElem)
	case KindRange:
		return types.NewRange(v.rng.Elem)
	default:
		logrus.WithField("kind", v.kind).Warn("value: GetType called on unrecognised kind")
		return types.NewPrimitive(types.Unknown)
	}
}

// IsNull reports whether this is the Null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumber reports whether this value is one of U8..U256.
func (v Value) IsNumber() bool {
	switch v.kind {
	case KindU8, KindU16, KindU32, KindU64, KindU128, KindU256:
		return true
	default:
		return false
	}
}

// deepCopy recursively materialises a value, following any nested cells
// (array elements, struct fields, the optional's cell) into independent
// Owned copies. Used by Cell.IntoOwned.
func (v Value) deepCopy() Value {
	switch v.kind {
	case KindArray:
		cells := make([]*Cell, len(v.arr))
		for i, c := range v.arr {
			cells[i] = NewCell(c.IntoOwned())
		}

		return Value{kind: KindArray, arr: cells, arrElem: v.arrElem}
	case KindStruct:
		fields := make([]*Cell, len(v.strct.Fields))
		for i, c := range v.strct.Fields {
			fields[i] = NewCell(c.IntoOwned())
		}

		return Value{kind: KindStruct, strct: &StructData{TypeID: v.strct.TypeID, TypeName: v.strct.TypeName, Fields: fields}}
	case KindOptional:
		if v.opt == nil {
			return v
		}

		return Value{kind: KindOptional, opt: NewCell(v.opt.IntoOwned()), optElem: v.optElem}
	case KindU256:
		if v.u256 == nil {
			return v
		}

		nv := v
		nv.u256 = new(uint256.Int).Set(v.u256)

		return nv
	default:
		return v
	}
}

// Clone returns an independent deep copy of this value (same contract as
// deepCopy, exported for callers outside the package, e.g. the
// interpreter's variable-binding path).
func (v Value) Clone() Value { return v.deepCopy() }
