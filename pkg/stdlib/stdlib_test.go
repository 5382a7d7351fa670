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
	"testing"

	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPopulatesOptionalStringArrayAndPoint(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	optType := types.NewOptional(types.NewPrimitive(types.U64))

	for _, name := range []string{"is_none", "is_some", "unwrap", "unwrap_or"} {
		_, err := r.GetFunction(name, &optType, nil)
		assert.NoError(t, err, "expected %s to be registered on Optional<T>", name)
	}

	strType := types.NewPrimitive(types.String)
	_, err = r.GetFunction("len", &strType, nil)
	assert.NoError(t, err)

	arrType := types.NewArray(types.NewPrimitive(types.U64))
	_, err = r.GetFunction("len", &arrType, nil)
	assert.NoError(t, err)

	_, err = r.GetFunction("push", &arrType, []types.Type{types.NewPrimitive(types.U64)})
	assert.NoError(t, err)

	layout, err := r.GetStructByName("Point")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, layout.FieldNames)
}

func TestOptionalUnwrapOrFallsBackOnNone(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	optType := types.NewOptional(types.NewPrimitive(types.U64))
	fn, err := r.GetFunction("unwrap_or", &optType, []types.Type{types.NewPrimitive(types.U64)})
	require.NoError(t, err)

	none := value.NewOptionalNone(types.NewPrimitive(types.U64))
	result, err := fn.Callback(none, []value.Value{value.NewU64(42)})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), mustU64(t, result))

	some := value.NewOptionalSome(value.NewU64(7))
	result, err = fn.Callback(some, []value.Value{value.NewU64(42)})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), mustU64(t, result))
}

func TestArrayPushReturnsGrownArrayWithoutMutatingReceiver(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	arrType := types.NewArray(types.NewPrimitive(types.U64))
	fn, err := r.GetFunction("push", &arrType, []types.Type{types.NewPrimitive(types.U64)})
	require.NoError(t, err)

	original, err := value.NewArray(types.NewPrimitive(types.U64), []value.Value{value.NewU64(1), value.NewU64(2)})
	require.NoError(t, err)

	grown, err := fn.Callback(original, []value.Value{value.NewU64(3)})
	require.NoError(t, err)

	originalCells, err := original.AsArray()
	require.NoError(t, err)
	assert.Len(t, originalCells, 2)

	grownCells, err := grown.AsArray()
	require.NoError(t, err)
	assert.Len(t, grownCells, 3)
}

func mustU64(t *testing.T, v value.Value) uint64 {
	t.Helper()

	n, err := v.AsU64()
	require.NoError(t, err)

	return n
}
