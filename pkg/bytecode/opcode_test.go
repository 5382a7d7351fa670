package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeByteNumberingMatchesWireContract(t *testing.T) {
	cases := map[OpCode]byte{
		Constant:       0,
		MemoryLoad:     1,
		MemorySet:      2,
		SubLoad:        3,
		Pop:            4,
		Copy:           5,
		Copy2:          6,
		Swap:           7,
		Swap2:          8,
		Jump:           9,
		JumpIfFalse:    10,
		IterableLength: 11,
		IteratorBegin:  12,
		IteratorNext:   13,
		IteratorEnd:    14,
		Return:         15,
		ArrayCall:      16,
		Cast:           17,
		InvokeChunk:    18,
		SysCall:        19,
		NewArray:       20,
		NewStruct:      21,
		Add:            22,
		Sub:            23,
		Mul:            24,
		Div:            25,
		Mod:            26,
		Pow:            27,
		And:            28,
		Or:             29,
		Xor:            30,
		Shl:            31,
		Shr:            32,
		Eq:             33,
		Neg:            34,
		Gt:             35,
		Lt:             36,
		Gte:            37,
		Lte:            38,
		Assign:         39,
		AssignAdd:      40,
		AssignSub:      41,
		AssignMul:      42,
		AssignDiv:      43,
		AssignMod:      44,
		AssignPow:      45,
		AssignAnd:      46,
		AssignOr:       47,
		AssignXor:      48,
		AssignShl:      49,
		AssignShr:      50,
		Inc:            51,
		Dec:            52,
		NewRange:       53,
	}

	for op, want := range cases {
		assert.Equal(t, want, byte(op), op.String())
	}
}

func TestFromByteRoundTrip(t *testing.T) {
	for b := byte(0); b <= 53; b++ {
		op, ok := FromByte(b)
		assert.True(t, ok, "byte %d must decode", b)
		assert.Equal(t, b, byte(op))
	}

	_, ok := FromByte(54)
	assert.False(t, ok)

	_, ok = FromByte(255)
	assert.False(t, ok)
}

func TestAsAssignOperator(t *testing.T) {
	assign, ok := Add.AsAssignOperator()
	assert.True(t, ok)
	assert.Equal(t, AssignAdd, assign)

	assign, ok = Pow.AsAssignOperator()
	assert.True(t, ok)
	assert.Equal(t, AssignPow, assign)

	_, ok = Eq.AsAssignOperator()
	assert.False(t, ok, "equality has no assignment form")

	_, ok = Assign.AsAssignOperator()
	assert.False(t, ok)
}

func TestOpcodeStringInvalidOutOfRange(t *testing.T) {
	assert.Equal(t, "Invalid", OpCode(200).String())
	assert.Equal(t, "Add", Add.String())
}
