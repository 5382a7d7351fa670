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

// Package stdlib is the host environment builder: a concrete, if modest,
// catalog of native functions and structs registered against an
// env.Registry, standing in for whatever native surface a real embedding
// would supply. Grounded on
// original_source/builder/src/environment/xstd/optional.rs's
// register_native_function calls for Optional<T>'s is_none/is_some/unwrap/
// unwrap_or, with the same registration shape extended to a String.len()
// and Array<T>.len()/push() that original_source's own xstd directory
// doesn't carry (filtered out of the retrieved source, or never ported from
// the reference VM's compiler intrinsics) but spec.md's own Scenario 4
// requires a native string len().
package stdlib

import (
	"github.com/consensys/cscript/pkg/env"
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

func optionalT() types.Type { return types.NewOptional(types.NewPrimitive(types.T)) }

// registerOptional adds is_none/is_some/unwrap/unwrap_or on Optional<T>.
func registerOptional(r *env.Registry) {
	r.AddNativeFunction(env.NativeFunction{
		Name:         "is_none",
		ForType:      typePtr(optionalT()),
		ReturnType:   typePtr(types.NewPrimitive(types.Bool)),
		EstimatedGas: 1,
		Callback: func(receiver value.Value, _ []value.Value) (value.Value, error) {
			_, some := receiver.AsOptional()
			return value.NewBool(!some), nil
		},
	})

	r.AddNativeFunction(env.NativeFunction{
		Name:         "is_some",
		ForType:      typePtr(optionalT()),
		ReturnType:   typePtr(types.NewPrimitive(types.Bool)),
		EstimatedGas: 1,
		Callback: func(receiver value.Value, _ []value.Value) (value.Value, error) {
			_, some := receiver.AsOptional()
			return value.NewBool(some), nil
		},
	})

	r.AddNativeFunction(env.NativeFunction{
		Name:         "unwrap",
		ForType:      typePtr(optionalT()),
		ReturnType:   typePtr(types.NewPrimitive(types.T)),
		EstimatedGas: 1,
		Callback: func(receiver value.Value, _ []value.Value) (value.Value, error) {
			cell, some := receiver.AsOptional()
			if !some {
				return value.Value{}, vmerrors.NewInvalidValue(stringerString("none"), stringerString("some"))
			}

			return cell.Handle().Value().Clone(), nil
		},
	})

	r.AddNativeFunction(env.NativeFunction{
		Name:         "unwrap_or",
		ForType:      typePtr(optionalT()),
		ParamTypes:   []types.Type{types.NewPrimitive(types.T)},
		ReturnType:   typePtr(types.NewPrimitive(types.T)),
		EstimatedGas: 1,
		Callback: func(receiver value.Value, args []value.Value) (value.Value, error) {
			cell, some := receiver.AsOptional()
			if some {
				return cell.Handle().Value().Clone(), nil
			}

			return args[0], nil
		},
	})
}

func typePtr(t types.Type) *types.Type { return &t }

type stringerString string

func (s stringerString) String() string { return string(s) }
