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
)

// registerStructs adds Point{x, y: u64}, a native struct layout exercising
// env.Registry.AddNativeStruct the way program-declared structs exercise
// AddProgramStruct: scripts can construct and read it exactly like a
// program struct (native and program structs share one name space in
// env.Registry, so Point takes id 0 and a program may not declare its own
// Point), with no attached behaviour of its own since native structs,
// unlike native functions, are pure shape.
func registerStructs(r *env.Registry) error {
	u64 := types.NewPrimitive(types.U64)

	_, err := r.AddNativeStruct("Point", []string{"x", "y"}, []types.Type{u64, u64})

	return err
}
