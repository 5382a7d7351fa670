package ast

import (
	"testing"

	"github.com/consensys/cscript/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestEntryFunctionLookup(t *testing.T) {
	prog := &Program{
		Functions: []Function{
			{Name: "helper", IsEntry: false},
			{Name: "main", IsEntry: true, ReturnType: ptrType(types.NewPrimitive(types.U64))},
		},
	}

	f, ok := prog.EntryFunction("main")
	assert.True(t, ok)
	assert.Equal(t, "main", f.Name)

	_, ok = prog.EntryFunction("helper")
	assert.False(t, ok, "a non-entry function must not be resolved as an entry point")

	_, ok = prog.EntryFunction("missing")
	assert.False(t, ok)
}

func ptrType(t types.Type) *types.Type { return &t }
