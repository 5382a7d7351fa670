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

// Package types implements cscript's static type system: the Type variants,
// compatibility (used to admit arguments at call sites), castability
// (lossy and lossless) and the primitive byte encoding that is part of the
// bytecode wire contract.
package types

import "fmt"

// Kind tags the variant of a Type. Struct/Array/Optional/Range carry extra
// data (a struct id, or an inner Type) alongside the kind.
type Kind uint8

const (
	// Any matches anything during function resolution.
	Any Kind = iota
	// T is a unification wildcard, used only when registering generic
	// native methods (e.g. Optional<T>'s unwrap). It is never a value-level
	// tag.
	T
	U8
	U16
	U32
	U64
	U128
	U256
	Bool
	String
	Struct
	Array
	Optional
	Range
	// Unknown is the type of Null and of empty arrays/optionals: no element
	// type has been observed yet.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Any:
		return "any"
	case T:
		return "T"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case U256:
		return "u256"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Struct:
		return "struct"
	case Array:
		return "array"
	case Optional:
		return "optional"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Type is a single type value: a Kind, plus an inner Type for the container
// kinds (Array/Optional/Range) and a struct id for Struct.
type Type struct {
	kind     Kind
	inner    *Type
	structID uint32
	// structName is carried for diagnostics only; equality/compatibility
	// use structID.
	structName string
}

// NewPrimitive constructs a non-container type (Any, T, U8..U256, Bool,
// String or Unknown). Passing a container kind panics: use NewArray /
// NewOptional / NewRange / NewStruct instead.
func NewPrimitive(kind Kind) Type {
	switch kind {
	case Array, Optional, Range, Struct:
		panic("types: NewPrimitive called with a container kind")
	}

	return Type{kind: kind}
}

// NewArray constructs Array(inner).
func NewArray(inner Type) Type {
	return Type{kind: Array, inner: &inner}
}

// NewOptional constructs Optional(inner).
func NewOptional(inner Type) Type {
	return Type{kind: Optional, inner: &inner}
}

// NewRange constructs Range(inner). Per the data model, inner must be a
// numeric primitive type; this is enforced by the value layer at
// construction time, not here.
func NewRange(inner Type) Type {
	return Type{kind: Range, inner: &inner}
}

// NewStruct constructs Struct(id) for the struct registered with the given
// id and (diagnostic-only) name.
func NewStruct(id uint32, name string) Type {
	return Type{kind: Struct, structID: id, structName: name}
}

// Kind returns this type's variant tag.
func (t Type) Kind() Kind { return t.kind }

// StructID returns the struct id for a Struct type (undefined otherwise).
func (t Type) StructID() uint32 { return t.structID }

// Inner returns the element type of a container type (Array/Optional/
// Range). Panics if called on a non-container type; callers should guard
// with HasInnerType first.
func (t Type) Inner() Type {
	if t.inner == nil {
		panic("types: Inner called on a type with no inner type")
	}

	return *t.inner
}

// String renders the type the way a diagnostic would reference it.
func (t Type) String() string {
	switch t.kind {
	case Array:
		return fmt.Sprintf("%s[]", t.inner)
	case Optional:
		return fmt.Sprintf("optional<%s>", t.inner)
	case Range:
		return fmt.Sprintf("range<%s>", t.inner)
	case Struct:
		if t.structName != "" {
			return t.structName
		}

		return fmt.Sprintf("struct#%d", t.structID)
	default:
		return t.kind.String()
	}
}

// Equal is structural type equality: same kind, same inner (recursively),
// same struct id.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}

	switch t.kind {
	case Struct:
		return t.structID == other.structID
	case Array, Optional, Range:
		return t.Inner().Equal(other.Inner())
	default:
		return true
	}
}

// HasInnerType is true for Array, Optional and Range.
func (t Type) HasInnerType() bool {
	switch t.kind {
	case Array, Optional, Range:
		return true
	default:
		return false
	}
}

// IsNumber is true for U8..U256.
func (t Type) IsNumber() bool {
	switch t.kind {
	case U8, U16, U32, U64, U128, U256:
		return true
	default:
		return false
	}
}

// IsArray is true for Array(_).
func (t Type) IsArray() bool { return t.kind == Array }

// IsStruct is true for Struct(_).
func (t Type) IsStruct() bool { return t.kind == Struct }

// IsOptional is true for Optional(_).
func (t Type) IsOptional() bool { return t.kind == Optional }

// IsIterable is true for Array and Range.
func (t Type) IsIterable() bool {
	return t.kind == Array || t.kind == Range
}

// AllowNull is true for Optional(_).
func (t Type) AllowNull() bool { return t.kind == Optional }

// IsPrimitive is true iff PrimitiveByte is defined for this type.
func (t Type) IsPrimitive() bool {
	_, ok := t.PrimitiveByte()
	return ok
}

// PrimitiveByte returns the fixed wire encoding for U8..U256, Bool, String.
// Bijective with FromPrimitiveByte. Returns (0, false) for every other kind.
func (t Type) PrimitiveByte() (byte, bool) {
	switch t.kind {
	case U8:
		return 0, true
	case U16:
		return 1, true
	case U32:
		return 2, true
	case U64:
		return 3, true
	case U128:
		return 4, true
	case U256:
		return 5, true
	case Bool:
		return 6, true
	case String:
		return 7, true
	default:
		return 0, false
	}
}

// FromPrimitiveByte is the inverse of PrimitiveByte.
func FromPrimitiveByte(b byte) (Type, bool) {
	switch b {
	case 0:
		return NewPrimitive(U8), true
	case 1:
		return NewPrimitive(U16), true
	case 2:
		return NewPrimitive(U32), true
	case 3:
		return NewPrimitive(U64), true
	case 4:
		return NewPrimitive(U128), true
	case 5:
		return NewPrimitive(U256), true
	case 6:
		return NewPrimitive(Bool), true
	case 7:
		return NewPrimitive(String), true
	default:
		return Type{}, false
	}
}

// IsCompatibleWith determines whether a value of type t may be supplied
// where a value of type other is expected. Reflexive; Any and T accept
// anything; containers admit a bare value whose type is compatible with
// the container's inner type (so [1,2,3] is admitted against T[]); the
// Unknown bottom type (an empty array's element type) is compatible with
// any inner type of the same container shape.
func (t Type) IsCompatibleWith(other Type) bool {
	switch other.kind {
	case Any, T:
		return true
	case Range:
		return t.kind == Range && t.Inner().IsCompatibleWith(other.Inner())
	case Array:
		if t.kind == Array {
			return t.Inner().kind == Unknown || t.Inner().IsCompatibleWith(other.Inner())
		}

		return t.Equal(other) || t.IsCompatibleWith(other.Inner())
	case Optional:
		if t.kind == Optional {
			return t.Inner().kind == Unknown || t.Inner().IsCompatibleWith(other.Inner())
		}

		return t.Equal(other) || t.IsCompatibleWith(other.Inner())
	default:
		return t.Equal(other) || t.kind == T || t.kind == Any
	}
}

var numericWidths = map[Kind]int{
	U8:   8,
	U16:  16,
	U32:  32,
	U64:  64,
	U128: 128,
	U256: 256,
}

// IsCastableTo is true for any pair among the numeric widths and bool
// (all-pairs, including a type cast to itself), and for any numeric or
// bool source cast to string. No other pairs are castable.
func (t Type) IsCastableTo(other Type) bool {
	srcNumeric := t.IsNumber() || t.kind == Bool
	if !srcNumeric {
		return false
	}

	if other.kind == String {
		return true
	}

	return other.IsNumber() || other.kind == Bool
}

// IsCastableToNoLoss is widening-only: numeric-to-numeric where the target
// width is strictly greater, excluding bool and string targets entirely.
func (t Type) IsCastableToNoLoss(other Type) bool {
	srcWidth, srcOK := numericWidths[t.kind]
	dstWidth, dstOK := numericWidths[other.kind]

	if !srcOK || !dstOK {
		return false
	}

	return dstWidth > srcWidth
}
