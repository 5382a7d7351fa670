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
	"math/big"

	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/holiman/uint256"
)

// CastTo performs the truncating cast: integer/bool sources always succeed,
// wrapping to the target width via low-bits extraction (U256 down to a
// smaller width goes through the same path); non-numeric, non-bool sources
// fail with InvalidCastType. A String target instead formats the source.
func (v Value) CastTo(target types.Type) (Value, error) {
	if !v.GetType().IsCastableTo(target) {
		return Value{}, vmerrors.NewInvalidCastType(target)
	}

	if target.Kind() == types.String {
		return NewString(v.ToDisplayString()), nil
	}

	mag, err := v.toBigForCast()
	if err != nil {
		return Value{}, err
	}

	switch target.Kind() {
	case types.Bool:
		return NewBool(mag.Sign() != 0), nil
	case types.U8:
		return NewU8(uint8(truncate(mag, 8).Uint64())), nil
	case types.U16:
		return NewU16(uint16(truncate(mag, 16).Uint64())), nil
	case types.U32:
		return NewU32(uint32(truncate(mag, 32).Uint64())), nil
	case types.U64:
		return NewU64(truncate(mag, 64).Uint64()), nil
	case types.U128:
		return NewU128(U128FromBig(mag)), nil
	case types.U256:
		var r uint256.Int
		r.SetFromBig(modInto256(mag))

		return NewU256(&r), nil
	default:
		return Value{}, vmerrors.NewInvalidCastType(target)
	}
}

// CheckedCastTo performs the checked cast: it fails with CastError if the
// source value's magnitude does not fit the target type (no truncation).
// Any numeric or bool source checked-casts to String unconditionally (the
// same formatting CastTo does). Bool sources otherwise checked-cast only to
// Bool; numeric sources checked-cast to
// a numeric type only when in range, or to Bool only for 0/1, or to String
// unconditionally (formatting never loses information).
func (v Value) CheckedCastTo(target types.Type) (Value, error) {
	if !v.GetType().IsCastableTo(target) {
		return Value{}, vmerrors.NewInvalidCastType(target)
	}

	if target.Kind() == types.String {
		return v.CastTo(target)
	}

	if v.kind == KindBool {
		if target.Kind() != types.Bool {
			return Value{}, vmerrors.New(vmerrors.CastError)
		}

		return v, nil
	}

	mag, err := v.toBigForCast()
	if err != nil {
		return Value{}, err
	}

	switch target.Kind() {
	case types.Bool:
		if mag.Cmp(bigZero) == 0 {
			return NewBool(false), nil
		}

		if mag.Cmp(bigOne) == 0 {
			return NewBool(true), nil
		}

		return Value{}, vmerrors.New(vmerrors.CastError)
	case types.U8, types.U16, types.U32, types.U64, types.U128, types.U256:
		if !fitsWidth(mag, numericBitWidth(target.Kind())) {
			return Value{}, vmerrors.New(vmerrors.CastError)
		}

		return v.CastTo(target)
	default:
		return Value{}, vmerrors.NewInvalidCastType(target)
	}
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

func numericBitWidth(k types.Kind) int {
	switch k {
	case types.U8:
		return 8
	case types.U16:
		return 16
	case types.U32:
		return 32
	case types.U64:
		return 64
	case types.U128:
		return 128
	case types.U256:
		return 256
	default:
		return 0
	}
}

func fitsWidth(b *big.Int, width int) bool {
	if b.Sign() < 0 {
		return false
	}

	return b.BitLen() <= width
}

func truncate(b *big.Int, width int) *big.Int {
	mod := new(big.Int).Lsh(bigOne, uint(width))
	return new(big.Int).Mod(b, mod)
}

func modInto256(b *big.Int) *big.Int {
	mod := new(big.Int).Lsh(bigOne, 256)
	return new(big.Int).Mod(b, mod)
}

// toBigForCast extracts the magnitude of a numeric or bool source as an
// arbitrary-precision integer, the common representation every truncating
// or checked numeric cast target is computed from.
func (v Value) toBigForCast() (*big.Int, error) {
	switch v.kind {
	case KindBool:
		if v.b {
			return big.NewInt(1), nil
		}

		return big.NewInt(0), nil
	case KindU8:
		return big.NewInt(int64(v.u8)), nil
	case KindU16:
		return big.NewInt(int64(v.u16)), nil
	case KindU32:
		return big.NewInt(int64(v.u32)), nil
	case KindU64:
		return new(big.Int).SetUint64(v.u64), nil
	case KindU128:
		return v.u128.ToBig(), nil
	case KindU256:
		return v.u256.ToBig(), nil
	default:
		return nil, vmerrors.New(vmerrors.InvalidCastType)
	}
}
