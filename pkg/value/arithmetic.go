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
	"math/bits"

	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/holiman/uint256"
)

// Increment returns v+1, wrapping on overflow per the data model (++ never
// fails on an otherwise well-typed numeric operand; OverflowOccured is
// reserved for the checked arithmetic operators, not the increment/decrement
// statement forms).
func (v Value) Increment() (Value, error) {
	switch v.kind {
	case KindU8:
		return NewU8(v.u8 + 1), nil
	case KindU16:
		return NewU16(v.u16 + 1), nil
	case KindU32:
		return NewU32(v.u32 + 1), nil
	case KindU64:
		return NewU64(v.u64 + 1), nil
	case KindU128:
		return NewU128(v.u128.Add(U128FromUint64(1))), nil
	case KindU256:
		var r uint256.Int
		r.AddUint64(v.u256, 1)

		return NewU256(&r), nil
	default:
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}

// Decrement returns v-1, wrapping on underflow, mirroring Increment.
func (v Value) Decrement() (Value, error) {
	switch v.kind {
	case KindU8:
		return NewU8(v.u8 - 1), nil
	case KindU16:
		return NewU16(v.u16 - 1), nil
	case KindU32:
		return NewU32(v.u32 - 1), nil
	case KindU64:
		return NewU64(v.u64 - 1), nil
	case KindU128:
		return NewU128(v.u128.Sub(U128FromUint64(1))), nil
	case KindU256:
		var r uint256.Int
		r.SubUint64(v.u256, 1)

		return NewU256(&r), nil
	default:
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}

// Add returns v+other, wrapping on overflow. Both operands must already be
// the same numeric kind; callers (the interpreter's binary-operator
// dispatch) are responsible for having checked OperationNotSameType first.
func (v Value) Add(other Value) (Value, error) {
	return numericOp(v, other,
		func(a, b uint8) uint8 { return a + b },
		func(a, b uint16) uint16 { return a + b },
		func(a, b uint32) uint32 { return a + b },
		func(a, b uint64) uint64 { return a + b },
		func(a, b U128) U128 { return a.Add(b) },
		func(r, a, b *uint256.Int) { r.Add(a, b) },
	)
}

// Sub returns v-other, wrapping on underflow.
func (v Value) Sub(other Value) (Value, error) {
	return numericOp(v, other,
		func(a, b uint8) uint8 { return a - b },
		func(a, b uint16) uint16 { return a - b },
		func(a, b uint32) uint32 { return a - b },
		func(a, b uint64) uint64 { return a - b },
		func(a, b U128) U128 { return a.Sub(b) },
		func(r, a, b *uint256.Int) { r.Sub(a, b) },
	)
}

// Mul returns v*other, wrapping on overflow.
func (v Value) Mul(other Value) (Value, error) {
	return numericOp(v, other,
		func(a, b uint8) uint8 { return a * b },
		func(a, b uint16) uint16 { return a * b },
		func(a, b uint32) uint32 { return a * b },
		func(a, b uint64) uint64 { return a * b },
		func(a, b U128) U128 { return a.Mul(b) },
		func(r, a, b *uint256.Int) { r.Mul(a, b) },
	)
}

// Div returns the truncating quotient v/other, or DivByZero if other is
// zero.
func (v Value) Div(other Value) (Value, error) {
	if other.IsZeroNumber() {
		return Value{}, vmerrors.New(vmerrors.DivByZero)
	}

	return numericOp(v, other,
		func(a, b uint8) uint8 { return a / b },
		func(a, b uint16) uint16 { return a / b },
		func(a, b uint32) uint32 { return a / b },
		func(a, b uint64) uint64 { return a / b },
		func(a, b U128) U128 { return a.Div(b) },
		func(r, a, b *uint256.Int) { r.Div(a, b) },
	)
}

// Mod returns the remainder v%other, or DivByZero if other is zero.
func (v Value) Mod(other Value) (Value, error) {
	if other.IsZeroNumber() {
		return Value{}, vmerrors.New(vmerrors.DivByZero)
	}

	return numericOp(v, other,
		func(a, b uint8) uint8 { return a % b },
		func(a, b uint16) uint16 { return a % b },
		func(a, b uint32) uint32 { return a % b },
		func(a, b uint64) uint64 { return a % b },
		func(a, b U128) U128 { return a.Mod(b) },
		func(r, a, b *uint256.Int) { r.Mod(a, b) },
	)
}

// And returns the bitwise AND of v and other.
func (v Value) And(other Value) (Value, error) {
	return numericOp(v, other,
		func(a, b uint8) uint8 { return a & b },
		func(a, b uint16) uint16 { return a & b },
		func(a, b uint32) uint32 { return a & b },
		func(a, b uint64) uint64 { return a & b },
		func(a, b U128) U128 { return a.And(b) },
		func(r, a, b *uint256.Int) { r.And(a, b) },
	)
}

// Or returns the bitwise OR of v and other.
func (v Value) Or(other Value) (Value, error) {
	return numericOp(v, other,
		func(a, b uint8) uint8 { return a | b },
		func(a, b uint16) uint16 { return a | b },
		func(a, b uint32) uint32 { return a | b },
		func(a, b uint64) uint64 { return a | b },
		func(a, b U128) U128 { return a.Or(b) },
		func(r, a, b *uint256.Int) { r.Or(a, b) },
	)
}

// Xor returns the bitwise XOR of v and other.
func (v Value) Xor(other Value) (Value, error) {
	return numericOp(v, other,
		func(a, b uint8) uint8 { return a ^ b },
		func(a, b uint16) uint16 { return a ^ b },
		func(a, b uint32) uint32 { return a ^ b },
		func(a, b uint64) uint64 { return a ^ b },
		func(a, b U128) U128 { return a.Xor(b) },
		func(r, a, b *uint256.Int) { r.Xor(a, b) },
	)
}

// Shl returns v shifted left by shift bits.
func (v Value) Shl(shift uint) (Value, error) {
	switch v.kind {
	case KindU8:
		return NewU8(v.u8 << shift), nil
	case KindU16:
		return NewU16(v.u16 << shift), nil
	case KindU32:
		return NewU32(v.u32 << shift), nil
	case KindU64:
		return NewU64(v.u64 << shift), nil
	case KindU128:
		return NewU128(v.u128.Shl(shift)), nil
	case KindU256:
		var r uint256.Int
		r.Lsh(v.u256, shift)

		return NewU256(&r), nil
	default:
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}

// Shr returns v shifted right by shift bits.
func (v Value) Shr(shift uint) (Value, error) {
	switch v.kind {
	case KindU8:
		return NewU8(v.u8 >> shift), nil
	case KindU16:
		return NewU16(v.u16 >> shift), nil
	case KindU32:
		return NewU32(v.u32 >> shift), nil
	case KindU64:
		return NewU64(v.u64 >> shift), nil
	case KindU128:
		return NewU128(v.u128.Shr(shift)), nil
	case KindU256:
		var r uint256.Int
		r.Rsh(v.u256, shift)

		return NewU256(&r), nil
	default:
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}

// Pow returns v raised to the power other, wrapping on overflow at every
// intermediate multiplication. The interpreter's `**`/`**=` dispatch both use
// PowChecked instead; Pow is its wrapping counterpart, running the same
// square-and-multiply loop over Mul where PowChecked uses MulChecked.
func (v Value) Pow(other Value) (Value, error) {
	exp, err := toExponent(other)
	if err != nil {
		return Value{}, err
	}

	result := identityOf(v)
	base := v

	for exp > 0 {
		if exp&1 == 1 {
			result, err = result.Mul(base)
			if err != nil {
				return Value{}, err
			}
		}

		exp >>= 1
		if exp == 0 {
			break
		}

		base, err = base.Mul(base)
		if err != nil {
			return Value{}, err
		}
	}

	return result, nil
}

// PowChecked returns v raised to the power other, or OverflowOccured if any
// intermediate multiplication overflows the shared width.
func (v Value) PowChecked(other Value) (Value, error) {
	exp, err := toExponent(other)
	if err != nil {
		return Value{}, err
	}

	result := identityOf(v)
	base := v

	for exp > 0 {
		if exp&1 == 1 {
			result, err = result.MulChecked(base)
			if err != nil {
				return Value{}, err
			}
		}

		exp >>= 1
		if exp == 0 {
			break
		}

		base, err = base.MulChecked(base)
		if err != nil {
			return Value{}, err
		}
	}

	return result, nil
}

func toExponent(v Value) (uint64, error) {
	switch v.kind {
	case KindU8:
		return uint64(v.u8), nil
	case KindU16:
		return uint64(v.u16), nil
	case KindU32:
		return uint64(v.u32), nil
	case KindU64:
		return v.u64, nil
	case KindU128:
		return v.u128.Lo, nil
	case KindU256:
		return v.u256.Uint64(), nil
	default:
		return 0, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}

func identityOf(v Value) Value {
	switch v.kind {
	case KindU8:
		return NewU8(1)
	case KindU16:
		return NewU16(1)
	case KindU32:
		return NewU32(1)
	case KindU64:
		return NewU64(1)
	case KindU128:
		return NewU128(U128FromUint64(1))
	case KindU256:
		var r uint256.Int
		r.SetOne()

		return NewU256(&r)
	default:
		return v
	}
}

// AddChecked returns v+other, or OverflowOccured if the true sum does not
// fit in the operands' shared width. The interpreter's `+`/`+=` dispatch
// both use this (all binary arithmetic but `++`/`--` is overflow-checked);
// Add is its wrapping counterpart, which the interpreter does not call.
func (v Value) AddChecked(other Value) (Value, error) {
	return checkedNumericOp(v, other,
		func(a, b uint8) (uint8, bool) { r := a + b; return r, r < a },
		func(a, b uint16) (uint16, bool) { r := a + b; return r, r < a },
		func(a, b uint32) (uint32, bool) { r := a + b; return r, r < a },
		func(a, b uint64) (uint64, bool) { r := a + b; return r, r < a },
		func(a, b U128) (U128, bool) { return a.AddOverflow(b) },
		func(r, a, b *uint256.Int) bool { _, overflow := r.AddOverflow(a, b); return overflow },
	)
}

// SubChecked returns v-other, or OverflowOccured if it underflows.
func (v Value) SubChecked(other Value) (Value, error) {
	return checkedNumericOp(v, other,
		func(a, b uint8) (uint8, bool) { return a - b, a < b },
		func(a, b uint16) (uint16, bool) { return a - b, a < b },
		func(a, b uint32) (uint32, bool) { return a - b, a < b },
		func(a, b uint64) (uint64, bool) { return a - b, a < b },
		func(a, b U128) (U128, bool) { return a.SubOverflow(b) },
		func(r, a, b *uint256.Int) bool { _, overflow := r.SubOverflow(a, b); return overflow },
	)
}

// MulChecked returns v*other, or OverflowOccured if the true product does
// not fit in the operands' shared width.
func (v Value) MulChecked(other Value) (Value, error) {
	return checkedNumericOp(v, other,
		func(a, b uint8) (uint8, bool) { r := uint16(a) * uint16(b); return uint8(r), r>>8 != 0 },
		func(a, b uint16) (uint16, bool) { r := uint32(a) * uint32(b); return uint16(r), r>>16 != 0 },
		func(a, b uint32) (uint32, bool) { r := uint64(a) * uint64(b); return uint32(r), r>>32 != 0 },
		func(a, b uint64) (uint64, bool) {
			hi, lo := bitsMul64(a, b)
			return lo, hi != 0
		},
		func(a, b U128) (U128, bool) { return a.MulOverflow(b) },
		func(r, a, b *uint256.Int) bool { _, overflow := r.MulOverflow(a, b); return overflow },
	)
}

// ShlChecked returns v shifted left by shift, or OverflowOccured if shift is
// not strictly less than the operand's bit width (mirroring Rust's
// overflowing_shl: the overflow flag reports an out-of-range shift amount,
// not bits shifted out).
func (v Value) ShlChecked(shift uint) (Value, error) {
	width, ok := bitWidthOf(v)
	if !ok {
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}

	if shift >= width {
		return Value{}, vmerrors.New(vmerrors.OverflowOccured)
	}

	return v.Shl(shift)
}

// ShrChecked returns v shifted right by shift, or OverflowOccured if shift
// is not strictly less than the operand's bit width.
func (v Value) ShrChecked(shift uint) (Value, error) {
	width, ok := bitWidthOf(v)
	if !ok {
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}

	if shift >= width {
		return Value{}, vmerrors.New(vmerrors.OverflowOccured)
	}

	return v.Shr(shift)
}

func bitWidthOf(v Value) (uint, bool) {
	switch v.kind {
	case KindU8:
		return 8, true
	case KindU16:
		return 16, true
	case KindU32:
		return 32, true
	case KindU64:
		return 64, true
	case KindU128:
		return 128, true
	case KindU256:
		return 256, true
	default:
		return 0, false
	}
}

func bitsMul64(a, b uint64) (hi, lo uint64) {
	hi, lo = bits.Mul64(a, b)
	return hi, lo
}

// checkedNumericOp mirrors numericOp but the width-specific callbacks also
// report whether the true result overflowed.
func checkedNumericOp(
	a, b Value,
	op8 func(a, b uint8) (uint8, bool),
	op16 func(a, b uint16) (uint16, bool),
	op32 func(a, b uint32) (uint32, bool),
	op64 func(a, b uint64) (uint64, bool),
	op128 func(a, b U128) (U128, bool),
	op256 func(r, a, b *uint256.Int) bool,
) (Value, error) {
	if !a.IsNumber() {
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}

	if a.kind != b.kind {
		return Value{}, vmerrors.NewOperationNotSameType(a.GetType(), b.GetType())
	}

	var overflow bool

	var result Value

	switch a.kind {
	case KindU8:
		var r uint8
		r, overflow = op8(a.u8, b.u8)
		result = NewU8(r)
	case KindU16:
		var r uint16
		r, overflow = op16(a.u16, b.u16)
		result = NewU16(r)
	case KindU32:
		var r uint32
		r, overflow = op32(a.u32, b.u32)
		result = NewU32(r)
	case KindU64:
		var r uint64
		r, overflow = op64(a.u64, b.u64)
		result = NewU64(r)
	case KindU128:
		var r U128
		r, overflow = op128(a.u128, b.u128)
		result = NewU128(r)
	case KindU256:
		var r uint256.Int
		overflow = op256(&r, a.u256, b.u256)
		result = NewU256(&r)
	default:
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}

	if overflow {
		return Value{}, vmerrors.New(vmerrors.OverflowOccured)
	}

	return result, nil
}

// IsZeroNumber reports whether a numeric value equals zero (used for the
// DivByZero check ahead of Div/Mod).
func (v Value) IsZeroNumber() bool {
	switch v.kind {
	case KindU8:
		return v.u8 == 0
	case KindU16:
		return v.u16 == 0
	case KindU32:
		return v.u32 == 0
	case KindU64:
		return v.u64 == 0
	case KindU128:
		return v.u128.IsZero()
	case KindU256:
		return v.u256.IsZero()
	default:
		return false
	}
}

// Cmp orders two numeric values of the same kind: -1, 0, 1.
func (v Value) Cmp(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, vmerrors.NewOperationNotSameType(v.GetType(), other.GetType())
	}

	switch v.kind {
	case KindU8:
		return cmpOrdered(v.u8, other.u8), nil
	case KindU16:
		return cmpOrdered(v.u16, other.u16), nil
	case KindU32:
		return cmpOrdered(v.u32, other.u32), nil
	case KindU64:
		return cmpOrdered(v.u64, other.u64), nil
	case KindU128:
		return v.u128.Cmp(other.u128), nil
	case KindU256:
		return v.u256.Cmp(other.u256), nil
	default:
		return 0, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}

func cmpOrdered[T uint8 | uint16 | uint32 | uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// numericOp dispatches a same-kind binary numeric operation to the
// width-specific implementation, checking the OperationNotSameType and
// OperationNotNumberType invariants once here rather than in every caller.
func numericOp(
	a, b Value,
	op8 func(a, b uint8) uint8,
	op16 func(a, b uint16) uint16,
	op32 func(a, b uint32) uint32,
	op64 func(a, b uint64) uint64,
	op128 func(a, b U128) U128,
	op256 func(r, a, b *uint256.Int),
) (Value, error) {
	if !a.IsNumber() {
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}

	if a.kind != b.kind {
		return Value{}, vmerrors.NewOperationNotSameType(a.GetType(), b.GetType())
	}

	switch a.kind {
	case KindU8:
		return NewU8(op8(a.u8, b.u8)), nil
	case KindU16:
		return NewU16(op16(a.u16, b.u16)), nil
	case KindU32:
		return NewU32(op32(a.u32, b.u32)), nil
	case KindU64:
		return NewU64(op64(a.u64, b.u64)), nil
	case KindU128:
		return NewU128(op128(a.u128, b.u128)), nil
	case KindU256:
		var r uint256.Int
		op256(&r, a.u256, b.u256)

		return NewU256(&r), nil
	default:
		return Value{}, vmerrors.New(vmerrors.OperationNotNumberType)
	}
}
