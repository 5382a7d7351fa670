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
package scriptfile

import (
	"fmt"

	"github.com/consensys/cscript/pkg/ast"
)

var operatorByToken = buildOperatorByToken()

func buildOperatorByToken() map[string]ast.Operator {
	all := []ast.Operator{
		ast.Assign, ast.AssignPlus, ast.AssignMinus, ast.AssignMultiply, ast.AssignDivide,
		ast.AssignModulo, ast.AssignPower, ast.AssignBitwiseAnd, ast.AssignBitwiseOr,
		ast.AssignBitwiseXor, ast.AssignBitwiseLeft, ast.AssignBitwiseRight,
		ast.And, ast.Or,
		ast.Plus, ast.Minus, ast.Multiply, ast.Divide, ast.Modulo, ast.Power,
		ast.BitwiseAnd, ast.BitwiseOr, ast.BitwiseXor, ast.BitwiseLeft, ast.BitwiseRight,
		ast.Equals, ast.NotEquals, ast.GreaterThan, ast.GreaterOrEqual, ast.LessThan, ast.LessOrEqual,
	}

	m := make(map[string]ast.Operator, len(all))
	for _, op := range all {
		m[op.String()] = op
	}

	return m
}

func decodeOperator(token string) (ast.Operator, error) {
	op, ok := operatorByToken[token]
	if !ok {
		return 0, fmt.Errorf("scriptfile: unknown operator token %q", token)
	}

	return op, nil
}
