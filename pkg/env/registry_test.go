package env

import (
	"testing"

	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameMapperLayeredLookup(t *testing.T) {
	root := NewNameMapper()
	_, err := root.Register("a")
	require.NoError(t, err)

	child := NewChildNameMapper(root)
	id, err := child.Register("b")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)

	_, ok := child.Lookup("a")
	assert.True(t, ok, "child must see names registered in the parent layer")

	_, err = child.Register("b")
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.NameAlreadyUsed, vmErr.Kind())
}

func TestRegistryDuplicateStructNameFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.AddNativeStruct("Point", []string{"x", "y"}, []types.Type{
		types.NewPrimitive(types.U64), types.NewPrimitive(types.U64),
	})
	require.NoError(t, err)

	_, err = r.AddNativeStruct("Point", nil, nil)
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.StructNameAlreadyUsed, vmErr.Kind())
}

func TestGetFunctionResolvesByArityAndReceiver(t *testing.T) {
	r := NewRegistry()
	strType := types.NewPrimitive(types.String)

	r.AddNativeFunction(NativeFunction{
		Name:       "len",
		ForType:    &strType,
		ParamTypes: nil,
		Callback: func(recv value.Value, args []value.Value) (value.Value, error) {
			s, _ := recv.AsString()
			return value.NewU64(uint64(len(s))), nil
		},
	})

	f, err := r.GetFunction("len", &strType, nil)
	require.NoError(t, err)

	got, err := f.Callback(value.NewString("hello"), nil)
	require.NoError(t, err)

	n, err := got.AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
}

func TestGetFunctionNotFoundReportsArgs(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetFunction("nope", nil, []types.Type{types.NewPrimitive(types.U8)})
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.FunctionNotFound, vmErr.Kind())
}

func TestProgramFunctionsResolveBeforeNative(t *testing.T) {
	r := NewRegistry()

	r.AddNativeFunction(NativeFunction{
		Name: "greet",
		Callback: func(value.Value, []value.Value) (value.Value, error) {
			return value.NewString("native"), nil
		},
	})
	r.AddProgramFunction(NativeFunction{
		Name: "greet",
		Callback: func(value.Value, []value.Value) (value.Value, error) {
			return value.NewString("program"), nil
		},
	})

	f, err := r.GetFunction("greet", nil, nil)
	require.NoError(t, err)

	got, err := f.Callback(value.Null(), nil)
	require.NoError(t, err)

	s, err := got.AsString()
	require.NoError(t, err)
	assert.Equal(t, "program", s)
}
