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
	"math/bits"
)

// U128 is cscript's fixed-width, wrapping 128-bit unsigned integer: the
// storage representation for the value.Value U128 variant. It is kept as
// two 64-bit words (Hi the more significant), the same word-sliced layout
// gnark-crypto uses for its multi-limb field elements
// (pkg/util/field/bls12_377), adapted here to plain wrapping unsigned
// arithmetic rather than modular field reduction. There is no third-party
// 128-bit unsigned integer in the corpus (holiman/uint256, adopted for
// U256, is fixed at 256 bits); see DESIGN.md for why this one type is
// built on math/bits and math/big rather than an ecosystem dependency.
type U128 struct {
	Hi, Lo uint64
}

var u128Mod = new(big.Int).Lsh(big.NewInt(1), 128)

// U128FromUint64 widens a 64-bit value.
func U128FromUint64(v uint64) U128 {
	return U128{Lo: v}
}

// ToBig converts to an arbitrary-precision integer for operations (like
// division) that are far easier to get right against math/big than by
// hand-rolling multi-word arithmetic.
func (a U128) ToBig() *big.Int {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(a.Hi), 64)
	return v.Or(v, new(big.Int).SetUint64(a.Lo))
}

// U128FromBig truncates b to its low 128 bits (wrapping).
func U128FromBig(b *big.Int) U128 {
	m := new(big.Int).Mod(b, u128Mod)
	if m.Sign() < 0 {
		m.Add(m, u128Mod)
	}

	bz := m.Bytes()
	var buf [16]byte
	copy(buf[16-len(bz):], bz)

	return U128{
		Hi: beU64(buf[0:8]),
		Lo: beU64(buf[8:16]),
	}
}

func beU64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	return v
}

// IsZero reports whether the value is zero.
func (a U128) IsZero() bool { return a.Hi == 0 && a.Lo == 0 }

// Cmp returns -1, 0 or 1 comparing a to b as unsigned 128-bit integers.
func (a U128) Cmp(b U128) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}

		return 1
	}

	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}

		return 1
	}

	return 0
}

// Add returns a+b truncated to 128 bits (wrapping on overflow).
func (a U128) Add(b U128) U128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(a.Hi, b.Hi, carry)

	return U128{Hi: hi, Lo: lo}
}

// AddOverflow returns a+b along with whether the true sum does not fit in
// 128 bits.
func (a U128) AddOverflow(b U128) (U128, bool) {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, carry2 := bits.Add64(a.Hi, b.Hi, carry)

	return U128{Hi: hi, Lo: lo}, carry2 != 0
}

// Sub returns a-b truncated to 128 bits (wrapping on underflow).
func (a U128) Sub(b U128) U128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(a.Hi, b.Hi, borrow)

	return U128{Hi: hi, Lo: lo}
}

// SubOverflow returns a-b along with whether a < b (the subtraction
// underflowed).
func (a U128) SubOverflow(b U128) (U128, bool) {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, borrow2 := bits.Sub64(a.Hi, b.Hi, borrow)

	return U128{Hi: hi, Lo: lo}, borrow2 != 0
}

// Mul returns a*b truncated to 128 bits (wrapping on overflow).
func (a U128) Mul(b U128) U128 {
	return U128FromBig(new(big.Int).Mul(a.ToBig(), b.ToBig()))
}

// MulOverflow returns a*b along with whether the true product does not fit
// in 128 bits.
func (a U128) MulOverflow(b U128) (U128, bool) {
	full := new(big.Int).Mul(a.ToBig(), b.ToBig())
	wrapped := U128FromBig(full)

	return wrapped, full.Cmp(u128Mod) >= 0
}

// Div returns the truncating unsigned quotient a/b.
func (a U128) Div(b U128) U128 {
	return U128FromBig(new(big.Int).Div(a.ToBig(), b.ToBig()))
}

// Mod returns the unsigned remainder a%b.
func (a U128) Mod(b U128) U128 {
	return U128FromBig(new(big.Int).Mod(a.ToBig(), b.ToBig()))
}

// And, Or and Xor are bitwise operations over the 128-bit word pair.
func (a U128) And(b U128) U128 { return U128{Hi: a.Hi & b.Hi, Lo: a.Lo & b.Lo} }
func (a U128) Or(b U128) U128  { return U128{Hi: a.Hi | b.Hi, Lo: a.Lo | b.Lo} }
func (a U128) Xor(b U128) U128 { return U128{Hi: a.Hi ^ b.Hi, Lo: a.Lo ^ b.Lo} }

// Shl returns a shifted left by n bits (n >= 128 yields zero).
func (a U128) Shl(n uint) U128 {
	if n == 0 {
		return a
	}

	if n >= 128 {
		return U128{}
	}

	return U128FromBig(new(big.Int).Lsh(a.ToBig(), n))
}

// ShlOverflow shifts left and reports whether any set bit was shifted out
// of the 128-bit range.
func (a U128) ShlOverflow(n uint) (U128, bool) {
	full := new(big.Int).Lsh(a.ToBig(), n)

	return U128FromBig(full), full.Cmp(u128Mod) >= 0
}

// Shr returns a shifted right by n bits (n >= 128 yields zero).
func (a U128) Shr(n uint) U128 {
	if n >= 128 {
		return U128{}
	}

	return U128FromBig(new(big.Int).Rsh(a.ToBig(), n))
}

// String renders the decimal representation.
func (a U128) String() string { return a.ToBig().String() }
