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
package interpreter_test

import (
	"testing"

	"github.com/consensys/cscript/pkg/ast"
	"github.com/consensys/cscript/pkg/env"
	"github.com/consensys/cscript/pkg/interpreter"
	"github.com/consensys/cscript/pkg/stdlib"
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64t() types.Type { return types.NewPrimitive(types.U64) }
func u8t() types.Type  { return types.NewPrimitive(types.U8) }
func u32t() types.Type { return types.NewPrimitive(types.U32) }

func runMain(t *testing.T, program *ast.Program) (uint64, error) {
	t.Helper()

	registry, err := stdlib.NewRegistry()
	require.NoError(t, err)

	eval, err := interpreter.NewEvaluator(program, 10_000, 64, registry)
	require.NoError(t, err)

	return eval.CallEntryFunction("main", nil)
}

// Scenario 1: entry fn main() -> u64 { let x: u8 = 200; let y: u8 = 100;
// return (x + y) as u64; } -> OverflowOccured.
func TestScenarioU8OverflowViaPlainPlus(t *testing.T) {
	program := &ast.Program{
		Functions: []ast.Function{{
			Name:       "main",
			IsEntry:    true,
			ReturnType: ptrType(u64t()),
			Body: []ast.Statement{
				&ast.VariableDecl{Name: "x", Type: u8t(), Value: &ast.Literal{Value: value.NewU8(200)}},
				&ast.VariableDecl{Name: "y", Type: u8t(), Value: &ast.Literal{Value: value.NewU8(100)}},
				&ast.Return{Value: &ast.Cast{
					Operand: &ast.BinaryOp{Op: ast.Plus, Left: &ast.Variable{Name: "x"}, Right: &ast.Variable{Name: "y"}},
					Target:  u64t(),
				}},
			},
		}},
	}

	_, err := runMain(t, program)
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.OverflowOccured, vmErr.Kind())
}

// Scenario 2: entry fn main() -> u64 { let a: u64[] = [10, 20, 30];
// a[1] = a[0] + a[2]; return a[1]; } -> 40.
func TestScenarioArrayAliasedIndexAssign(t *testing.T) {
	arrayType := types.NewArray(u64t())

	program := &ast.Program{
		Functions: []ast.Function{{
			Name:       "main",
			IsEntry:    true,
			ReturnType: ptrType(u64t()),
			Body: []ast.Statement{
				&ast.VariableDecl{Name: "a", Type: arrayType, Value: &ast.ArrayConstructor{Elements: []ast.Expression{
					&ast.Literal{Value: value.NewU64(10)},
					&ast.Literal{Value: value.NewU64(20)},
					&ast.Literal{Value: value.NewU64(30)},
				}}},
				&ast.ExpressionStatement{Expr: &ast.BinaryOp{
					Op:   ast.Assign,
					Left: &ast.ArrayCall{Array: &ast.Variable{Name: "a"}, Index: &ast.Literal{Value: value.NewU64(1)}},
					Right: &ast.BinaryOp{
						Op:    ast.Plus,
						Left:  &ast.ArrayCall{Array: &ast.Variable{Name: "a"}, Index: &ast.Literal{Value: value.NewU64(0)}},
						Right: &ast.ArrayCall{Array: &ast.Variable{Name: "a"}, Index: &ast.Literal{Value: value.NewU64(2)}},
					},
				}},
				&ast.Return{Value: &ast.ArrayCall{Array: &ast.Variable{Name: "a"}, Index: &ast.Literal{Value: value.NewU64(1)}}},
			},
		}},
	}

	result, err := runMain(t, program)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), result)
}

// Scenario 3: struct P { x: u32, y: u32 } entry fn main() -> u64 {
// let p = P { x: 3, y: 4 }; return (p.x * p.x + p.y * p.y) as u64; } -> 25.
func TestScenarioStructPythagorean(t *testing.T) {
	program := &ast.Program{
		Structs: []ast.StructDecl{
			{Name: "P", FieldNames: []string{"x", "y"}, FieldTypes: []types.Type{u32t(), u32t()}},
		},
		Functions: []ast.Function{{
			Name:       "main",
			IsEntry:    true,
			ReturnType: ptrType(u64t()),
			Body: []ast.Statement{
				&ast.VariableDecl{
					Name: "p",
					// stdlib's native Point struct is registered first and
					// takes id 0, so the program's P is assigned id 1.
					Type: types.NewStruct(1, "P"),
					Value: &ast.StructConstructor{
						StructName: "P",
						FieldNames: []string{"x", "y"},
						FieldValues: []ast.Expression{
							&ast.Literal{Value: value.NewU32(3)},
							&ast.Literal{Value: value.NewU32(4)},
						},
					},
				},
				&ast.Return{Value: &ast.Cast{
					Operand: &ast.BinaryOp{
						Op: ast.Plus,
						Left: &ast.BinaryOp{
							Op:    ast.Multiply,
							Left:  &ast.Path{Left: &ast.Variable{Name: "p"}, Right: &ast.Variable{Name: "x"}},
							Right: &ast.Path{Left: &ast.Variable{Name: "p"}, Right: &ast.Variable{Name: "x"}},
						},
						Right: &ast.BinaryOp{
							Op:    ast.Multiply,
							Left:  &ast.Path{Left: &ast.Variable{Name: "p"}, Right: &ast.Variable{Name: "y"}},
							Right: &ast.Path{Left: &ast.Variable{Name: "p"}, Right: &ast.Variable{Name: "y"}},
						},
					},
					Target: u64t(),
				}},
			},
		}},
	}

	result, err := runMain(t, program)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), result)
}

// Scenario 4: entry fn main() -> u64 { let s = ""; let i: u8 = 0;
// while i < 3 { s += "a"; i += 1; } return s.len() as u64; } -> 3.
func TestScenarioStringConcatLoopWithLen(t *testing.T) {
	program := &ast.Program{
		Functions: []ast.Function{{
			Name:       "main",
			IsEntry:    true,
			ReturnType: ptrType(u64t()),
			Body: []ast.Statement{
				&ast.VariableDecl{Name: "s", Type: types.NewPrimitive(types.String), Value: &ast.Literal{Value: value.NewString("")}},
				&ast.VariableDecl{Name: "i", Type: u8t(), Value: &ast.Literal{Value: value.NewU8(0)}},
				&ast.While{
					Condition: &ast.BinaryOp{Op: ast.LessThan, Left: &ast.Variable{Name: "i"}, Right: &ast.Literal{Value: value.NewU8(3)}},
					Body: []ast.Statement{
						&ast.ExpressionStatement{Expr: &ast.BinaryOp{
							Op: ast.AssignPlus, Left: &ast.Variable{Name: "s"}, Right: &ast.Literal{Value: value.NewString("a")},
						}},
						&ast.ExpressionStatement{Expr: &ast.BinaryOp{
							Op: ast.AssignPlus, Left: &ast.Variable{Name: "i"}, Right: &ast.Literal{Value: value.NewU8(1)},
						}},
					},
				},
				&ast.Return{Value: &ast.Cast{
					Operand: &ast.Path{Left: &ast.Variable{Name: "s"}, Right: &ast.FunctionCall{Name: "len"}},
					Target:  u64t(),
				}},
			},
		}},
	}

	result, err := runMain(t, program)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result)
}

// Scenario 5: entry fn main() -> u64 { let o: optional<u64> = null;
// return o.unwrap_or(42); } -> 42.
func TestScenarioOptionalUnwrapOr(t *testing.T) {
	program := &ast.Program{
		Functions: []ast.Function{{
			Name:       "main",
			IsEntry:    true,
			ReturnType: ptrType(u64t()),
			Body: []ast.Statement{
				&ast.VariableDecl{
					Name:  "o",
					Type:  types.NewOptional(u64t()),
					Value: &ast.Literal{Value: value.NewOptionalNone(u64t())},
				},
				&ast.Return{Value: &ast.Path{
					Left: &ast.Variable{Name: "o"},
					Right: &ast.FunctionCall{
						Name: "unwrap_or",
						Args: []ast.Expression{&ast.Literal{Value: value.NewU64(42)}},
					},
				}},
			},
		}},
	}

	result, err := runMain(t, program)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), result)
}

// Scenario 6: fn f() { f(); } entry fn main() -> u64 { f(); return 0; }
// -> RecursiveLimitReached.
func TestScenarioRecursionBomb(t *testing.T) {
	program := &ast.Program{
		Functions: []ast.Function{
			{
				Name: "f",
				Body: []ast.Statement{
					&ast.ExpressionStatement{Expr: &ast.FunctionCall{Name: "f"}},
				},
			},
			{
				Name:       "main",
				IsEntry:    true,
				ReturnType: ptrType(u64t()),
				Body: []ast.Statement{
					&ast.ExpressionStatement{Expr: &ast.FunctionCall{Name: "f"}},
					&ast.Return{Value: &ast.Literal{Value: value.NewU64(0)}},
				},
			},
		},
	}

	registry := env.NewRegistry()
	eval, err := interpreter.NewEvaluator(program, 10_000, 64, registry)
	require.NoError(t, err)

	_, err = eval.CallEntryFunction("main", nil)
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.RecursiveLimitReached, vmErr.Kind())
}

func ptrType(t types.Type) *types.Type { return &t }
