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
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/cscript/pkg/ast"
	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRoundTrip(t *testing.T) {
	cases := []types.Type{
		types.NewPrimitive(types.U8),
		types.NewPrimitive(types.U256),
		types.NewPrimitive(types.String),
		types.NewArray(types.NewPrimitive(types.U64)),
		types.NewOptional(types.NewPrimitive(types.Bool)),
		types.NewRange(types.NewPrimitive(types.U32)),
		types.NewStruct(7, "Point"),
	}

	for _, want := range cases {
		data, err := marshalType(want)
		require.NoError(t, err)

		got, err := unmarshalType(data)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%s != %s", want, got)
	}
}

func TestValueRoundTrip(t *testing.T) {
	u128 := value.NewU128(value.U128FromUint64(123456789).Add(value.U128FromUint64(1)))

	u256 := value.NewU256(uint256.NewInt(987654321))

	arr, err := value.NewArray(types.NewPrimitive(types.U64), []value.Value{value.NewU64(1), value.NewU64(2)})
	require.NoError(t, err)

	rng, err := value.NewRange(value.NewU64(0), value.NewU64(10), types.NewPrimitive(types.U64))
	require.NoError(t, err)

	cases := []value.Value{
		value.Null(),
		value.NewBool(true),
		value.NewU8(200),
		value.NewU64(42),
		u128,
		u256,
		value.NewString("hello"),
		arr,
		value.NewStruct(1, "Point", []value.Value{value.NewU64(3), value.NewU64(4)}),
		value.NewOptionalNone(types.NewPrimitive(types.U64)),
		value.NewOptionalSome(value.NewU64(7)),
		rng,
	}

	for _, want := range cases {
		data, err := marshalValue(want)
		require.NoError(t, err)

		got, err := unmarshalValue(data)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%v != %v", want, got)
	}
}

func TestOperatorRoundTrip(t *testing.T) {
	for token, op := range operatorByToken {
		got, err := decodeOperator(token)
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	_, err := decodeOperator("not-a-real-operator")
	require.Error(t, err)
}

func TestProgramSaveLoad(t *testing.T) {
	program := &ast.Program{
		Structs: []ast.StructDecl{
			{Name: "Point", FieldNames: []string{"x", "y"}, FieldTypes: []types.Type{
				types.NewPrimitive(types.U64), types.NewPrimitive(types.U64),
			}},
		},
		Constants: []ast.ConstantDecl{
			{Name: "ZERO", Type: types.NewPrimitive(types.U64), Value: &ast.Literal{Value: value.NewU64(0)}},
		},
		Functions: []ast.Function{{
			Name:       "main",
			IsEntry:    true,
			ReturnType: func() *types.Type { t := types.NewPrimitive(types.U64); return &t }(),
			Body: []ast.Statement{
				&ast.VariableDecl{Name: "x", Type: types.NewPrimitive(types.U64), Value: &ast.Variable{Name: "ZERO"}},
				&ast.If{
					Condition: &ast.BinaryOp{Op: ast.Equals, Left: &ast.Variable{Name: "x"}, Right: &ast.Literal{Value: value.NewU64(0)}},
					Body: []ast.Statement{
						&ast.Return{Value: &ast.Literal{Value: value.NewU64(1)}},
					},
				},
				&ast.Else{Body: []ast.Statement{&ast.Return{Value: &ast.Variable{Name: "x"}}}},
			},
		}},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "program.json")

	require.NoError(t, Save(path, program))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, loaded.Structs, 1)
	assert.Len(t, loaded.Constants, 1)
	assert.Len(t, loaded.Functions, 1)
	assert.Equal(t, "main", loaded.Functions[0].Name)

	fn, ok := loaded.EntryFunction("main")
	require.True(t, ok)
	assert.Len(t, fn.Body, 3)
}

func TestU128DecimalRoundTrip(t *testing.T) {
	big128 := value.U128FromBig(new(big.Int).Lsh(big.NewInt(1), 100))

	data, err := marshalValue(value.NewU128(big128))
	require.NoError(t, err)

	got, err := unmarshalValue(data)
	require.NoError(t, err)

	n, err := got.AsU128()
	require.NoError(t, err)
	assert.Equal(t, big128.ToBig(), n.ToBig())
}
