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
package interpreter

import (
	"fmt"

	"github.com/consensys/cscript/pkg/ast"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

// executeFunction runs fn's body in a fresh root Context, binding receiver
// (when fn.ForType is set) under fn.InstanceName and each arg under its
// declared parameter name, then running the body to completion or an early
// Return. A function with no explicit `return` yields Null, matching the
// reference evaluator's fall-through behaviour.
func (e *Evaluator) executeFunction(fn *ast.Function, receiver value.Value, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Params) {
		argTypes := make([]fmt.Stringer, len(args))
		for i, a := range args {
			t := a.GetType()
			argTypes[i] = t
		}

		return value.Value{}, vmerrors.NewFunctionNotFound(fn.Name, argTypes)
	}

	ctx := e.newRootContext()

	if fn.ForType != nil {
		if err := ctx.RegisterVariable(fn.InstanceName, value.NewOwnedPath(receiver)); err != nil {
			return value.Value{}, err
		}
	}

	for i, p := range fn.Params {
		if err := ctx.RegisterVariable(p.Name, value.NewOwnedPath(args[i])); err != nil {
			return value.Value{}, err
		}
	}

	result, returned, err := e.executeStatements(ctx, nil, fn.Body)
	if err != nil {
		return value.Value{}, err
	}

	if returned {
		return result, nil
	}

	return value.Null(), nil
}
