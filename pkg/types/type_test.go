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
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// primitiveKinds lists every Kind that PrimitiveByte/FromPrimitiveByte round
// trips, per spec.md §8 invariant 4.
var primitiveKinds = []Kind{U8, U16, U32, U64, U128, U256, Bool, String}

func TestPrimitiveByteBijective(t *testing.T) {
	seen := make(map[byte]Kind)

	for _, k := range primitiveKinds {
		typ := NewPrimitive(k)

		b, ok := typ.PrimitiveByte()
		assert.True(t, ok, "%s should have a primitive byte", k)

		if other, exists := seen[b]; exists {
			t.Fatalf("byte %d assigned to both %s and %s", b, other, k)
		}
		seen[b] = k

		back, ok := FromPrimitiveByte(b)
		assert.True(t, ok)
		assert.True(t, typ.Equal(back), "from_primitive_byte(primitive_byte(%s)) != %s", k, k)
	}
}

func TestFromPrimitiveByteRejectsUnassignedByte(t *testing.T) {
	_, ok := FromPrimitiveByte(255)
	assert.False(t, ok)
}

func TestIsCompatibleWithReflexive(t *testing.T) {
	cases := []Type{
		NewPrimitive(U8),
		NewPrimitive(U256),
		NewPrimitive(Bool),
		NewPrimitive(String),
		NewArray(NewPrimitive(U64)),
		NewOptional(NewPrimitive(Bool)),
		NewRange(NewPrimitive(U32)),
		NewStruct(3, "P"),
	}

	for _, typ := range cases {
		assert.True(t, typ.IsCompatibleWith(typ), "%s should be compatible with itself", typ)
	}
}

func TestIsCompatibleWithTransitiveThroughContainers(t *testing.T) {
	// u8 is compatible with T, and T[] admits u8[] elementwise, so u8[] must
	// also be compatible with T[].
	u8arr := NewArray(NewPrimitive(U8))
	tArr := NewArray(NewPrimitive(T))
	assert.True(t, u8arr.IsCompatibleWith(tArr))

	u8opt := NewOptional(NewPrimitive(U8))
	tOpt := NewOptional(NewPrimitive(T))
	assert.True(t, u8opt.IsCompatibleWith(tOpt))

	u8rng := NewRange(NewPrimitive(U8))
	tRng := NewRange(NewPrimitive(T))
	assert.True(t, u8rng.IsCompatibleWith(tRng))

	// Transitivity: an empty array's Unknown element type is compatible with
	// any element type, so Unknown[] is compatible with U8[], and U8[] is
	// compatible with T[] above, so Unknown[] must reach T[] as well.
	unknownArr := NewArray(NewPrimitive(Unknown))
	assert.True(t, unknownArr.IsCompatibleWith(u8arr))
	assert.True(t, unknownArr.IsCompatibleWith(tArr))
}

func TestIsCastableToAllPairsAmongNumericWidthsAndBool(t *testing.T) {
	numericAndBool := []Kind{U8, U16, U32, U64, U128, U256, Bool}

	for _, src := range numericAndBool {
		for _, dst := range numericAndBool {
			assert.True(t, NewPrimitive(src).IsCastableTo(NewPrimitive(dst)),
				"%s should be castable to %s", src, dst)
		}

		assert.True(t, NewPrimitive(src).IsCastableTo(NewPrimitive(String)),
			"%s should be castable to string", src)
	}

	assert.False(t, NewPrimitive(String).IsCastableTo(NewPrimitive(U64)))
	assert.False(t, NewPrimitive(U64).IsCastableTo(NewArray(NewPrimitive(U64))))
}

func TestIsCastableToNoLossWideningOnly(t *testing.T) {
	assert.True(t, NewPrimitive(U8).IsCastableToNoLoss(NewPrimitive(U256)))
	assert.False(t, NewPrimitive(U8).IsCastableToNoLoss(NewPrimitive(U8)))
	assert.False(t, NewPrimitive(U256).IsCastableToNoLoss(NewPrimitive(U8)))
	assert.False(t, NewPrimitive(Bool).IsCastableToNoLoss(NewPrimitive(U64)))
	assert.False(t, NewPrimitive(U64).IsCastableToNoLoss(NewPrimitive(String)))
}
