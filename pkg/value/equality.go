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

// Equal is deep structural equality, following the data model's == contract:
// primitives compare by value, arrays compare by length then element-wise
// (through their cells, so aliasing is transparent), structs compare
// positionally by declared field (ignoring TypeName, which is diagnostic
// only), optionals compare None==None and Some(a)==Some(b) by a==b, ranges
// compare endpoints, and values of differing kinds are never equal (the
// interpreter's == operator rejects mismatched operand types before this is
// ever reached, via OperationNotSameType).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindU8:
		return v.u8 == other.u8
	case KindU16:
		return v.u16 == other.u16
	case KindU32:
		return v.u32 == other.u32
	case KindU64:
		return v.u64 == other.u64
	case KindU128:
		return v.u128 == other.u128
	case KindU256:
		return v.u256.Eq(other.u256)
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}

		for i := range v.arr {
			if !v.arr[i].Handle().Value().Equal(other.arr[i].Handle().Value()) {
				return false
			}
		}

		return true
	case KindStruct:
		if v.strct.TypeID != other.strct.TypeID || len(v.strct.Fields) != len(other.strct.Fields) {
			return false
		}

		for i := range v.strct.Fields {
			if !v.strct.Fields[i].Handle().Value().Equal(other.strct.Fields[i].Handle().Value()) {
				return false
			}
		}

		return true
	case KindOptional:
		if (v.opt == nil) != (other.opt == nil) {
			return false
		}

		if v.opt == nil {
			return true
		}

		return v.opt.Handle().Value().Equal(other.opt.Handle().Value())
	case KindRange:
		return v.rng.Start.Equal(other.rng.Start) && v.rng.End.Equal(other.rng.End)
	default:
		return false
	}
}
