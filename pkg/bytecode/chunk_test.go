package bytecode

import (
	"testing"

	"github.com/consensys/cscript/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWriteReadRoundTrip(t *testing.T) {
	c := NewChunk()
	idx := c.AddConstant(value.NewU64(42))

	c.EmitOpCode(Add)
	c.WriteU8(7)
	c.WriteBool(true)
	c.WriteU16(idx)
	c.WriteU32(0xdeadbeef)

	r := NewChunkReader(c)

	op, err := r.ReadOpCode()
	require.NoError(t, err)
	assert.Equal(t, Add, op)

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(7), b)

	flag, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, flag)

	got, err := r.ReadConstant()
	require.NoError(t, err)
	n, err := got.AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	assert.False(t, r.HasNext())
}

func TestChunkPopInstructionBackpatches(t *testing.T) {
	c := NewChunk()
	c.EmitOpCode(Add)
	c.EmitOpCode(Sub)
	assert.Equal(t, 2, c.Len())

	c.PopInstruction()
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, byte(Add), c.Instructions()[0])
}

func TestChunkReaderSeekFollowsJumpTarget(t *testing.T) {
	c := NewChunk()
	c.EmitOpCode(Jump)
	target := c.Len()
	c.EmitOpCode(Add)

	r := NewChunkReader(c)
	r.Seek(target)

	op, err := r.ReadOpCode()
	require.NoError(t, err)
	assert.Equal(t, Add, op)
}

func TestChunkReaderOutOfBounds(t *testing.T) {
	c := NewChunk()
	r := NewChunkReader(c)

	_, err := r.ReadU8()
	require.Error(t, err)
}
