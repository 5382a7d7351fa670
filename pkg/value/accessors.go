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
package value

import (
	"fmt"
	"strings"

	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/holiman/uint256"
)

func (v Value) typeMismatch(want fmt.Stringer) error {
	return vmerrors.NewInvalidValue(v.GetType(), want)
}

// AsBool asserts this is a Bool value.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.typeMismatch(boolStringer{})
	}

	return v.b, nil
}

// AsU8 asserts this is a U8 value.
func (v Value) AsU8() (uint8, error) {
	if v.kind != KindU8 {
		return 0, v.typeMismatch(u8Stringer{})
	}

	return v.u8, nil
}

// AsU16 asserts this is a U16 value.
func (v Value) AsU16() (uint16, error) {
	if v.kind != KindU16 {
		return 0, v.typeMismatch(u16Stringer{})
	}

	return v.u16, nil
}

// AsU32 asserts this is a U32 value.
func (v Value) AsU32() (uint32, error) {
	if v.kind != KindU32 {
		return 0, v.typeMismatch(u32Stringer{})
	}

	return v.u32, nil
}

// AsU64 asserts this is a U64 value.
func (v Value) AsU64() (uint64, error) {
	if v.kind != KindU64 {
		return 0, v.typeMismatch(u64Stringer{})
	}

	return v.u64, nil
}

// AsU128 asserts this is a U128 value.
func (v Value) AsU128() (U128, error) {
	if v.kind != KindU128 {
		return U128{}, v.typeMismatch(u128Stringer{})
	}

	return v.u128, nil
}

// AsU256 asserts this is a U256 value. The returned pointer aliases this
// Value's own storage; callers that intend to mutate it must clone first.
func (v Value) AsU256() (*uint256.Int, error) {
	if v.kind != KindU256 {
		return nil, v.typeMismatch(u256Stringer{})
	}

	return v.u256, nil
}

// AsString asserts this is a String value.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.typeMismatch(stringStringer{})
	}

	return v.str, nil
}

// AsArray asserts this is an Array value, returning its element cells (the
// element type is available via ArrayElemType).
func (v Value) AsArray() ([]*Cell, error) {
	if v.kind != KindArray {
		return nil, v.typeMismatch(arrayStringer{})
	}

	return v.arr, nil
}

// ArrayElemType returns the declared element type of an Array value
// (undefined on a non-Array value).
func (v Value) ArrayElemType() types.Type { return v.arrElem }

// AsStruct asserts this is a Struct value.
func (v Value) AsStruct() (*StructData, error) {
	if v.kind != KindStruct {
		return nil, v.typeMismatch(structStringer{})
	}

	return v.strct, nil
}

// AsOptional returns this Optional value's cell (nil if None) and whether
// the value is an Optional at all (the element type is available via
// OptionalElemType).
func (v Value) AsOptional() (*Cell, bool) {
	return v.opt, v.kind == KindOptional
}

// OptionalElemType returns the declared element type of an Optional value
// (undefined on a non-Optional value).
func (v Value) OptionalElemType() types.Type { return v.optElem }

// AsRange asserts this is a Range value.
func (v Value) AsRange() (*RangeData, error) {
	if v.kind != KindRange {
		return nil, v.typeMismatch(rangeStringer{})
	}

	return v.rng, nil
}

// numeric stringer helpers so AsX mismatches can report the expected type
// name without building a types.Type for it, while the actual type is
// available via GetType().
type (
	boolStringer   struct{}
	u8Stringer     struct{}
	u16Stringer    struct{}
	u32Stringer    struct{}
	u64Stringer    struct{}
	u128Stringer   struct{}
	u256Stringer   struct{}
	stringStringer struct{}
	arrayStringer  struct{}
	structStringer struct{}
	rangeStringer  struct{}
)

func (boolStringer) String() string   { return "bool" }
func (u8Stringer) String() string     { return "u8" }
func (u16Stringer) String() string    { return "u16" }
func (u32Stringer) String() string    { return "u32" }
func (u64Stringer) String() string    { return "u64" }
func (u128Stringer) String() string   { return "u128" }
func (u256Stringer) String() string   { return "u256" }
func (stringStringer) String() string { return "string" }
func (arrayStringer) String() string  { return "array" }
func (structStringer) String() string { return "struct" }
func (rangeStringer) String() string  { return "range" }

// ToDisplayString renders any value the way the language's implicit
// string-concatenation and native print facilities display it: numbers in
// decimal, Null as "null", arrays as "[a, b, c]", structs as
// "Name{f: v, ...}", optionals as "some(v)"/"none", ranges as "a..b".
func (v Value) ToDisplayString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}

		return "false"
	case KindU8:
		return fmt.Sprintf("%d", v.u8)
	case KindU16:
		return fmt.Sprintf("%d", v.u16)
	case KindU32:
		return fmt.Sprintf("%d", v.u32)
	case KindU64:
		return fmt.Sprintf("%d", v.u64)
	case KindU128:
		return v.u128.String()
	case KindU256:
		return v.u256.Dec()
	case KindString:
		return v.str
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, c := range v.arr {
			parts[i] = c.Handle().Value().ToDisplayString()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case KindStruct:
		parts := make([]string, len(v.strct.Fields))
		for i, c := range v.strct.Fields {
			parts[i] = c.Handle().Value().ToDisplayString()
		}

		return v.strct.TypeName + "{" + strings.Join(parts, ", ") + "}"
	case KindOptional:
		if v.opt == nil {
			return "none"
		}

		return "some(" + v.opt.Handle().Value().ToDisplayString() + ")"
	case KindRange:
		return v.rng.Start.ToDisplayString() + ".." + v.rng.End.ToDisplayString()
	default:
		return "?"
	}
}
