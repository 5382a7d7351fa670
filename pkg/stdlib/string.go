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
package stdlib

import (
	"github.com/consensys/cscript/pkg/env"
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
)

// registerString adds String.len(), used by spec.md's string-loop Scenario.
func registerString(r *env.Registry) {
	r.AddNativeFunction(env.NativeFunction{
		Name:         "len",
		ForType:      typePtr(types.NewPrimitive(types.String)),
		ReturnType:   typePtr(types.NewPrimitive(types.U64)),
		EstimatedGas: 1,
		Callback: func(receiver value.Value, _ []value.Value) (value.Value, error) {
			s, err := receiver.AsString()
			if err != nil {
				return value.Value{}, err
			}

			return value.NewU64(uint64(len(s))), nil
		},
	})
}
