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
package bytecode

import (
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
)

// Chunk is one compiled unit: a function body or block, as a constant pool
// plus an instruction stream. It is the wire-level sibling of ast.Function's
// Body — a future bytecode compiler lowers one into the other.
type Chunk struct {
	constants    []value.Value
	instructions []byte
}

// NewChunk constructs an empty chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Constant returns the constant at index, or false if out of range.
func (c *Chunk) Constant(index int) (value.Value, bool) {
	if index < 0 || index >= len(c.constants) {
		return value.Value{}, false
	}

	return c.constants[index], true
}

// Len returns the number of instruction bytes emitted so far.
func (c *Chunk) Len() int {
	return len(c.instructions)
}

// Instructions returns the raw instruction stream (read-only use expected;
// callers must not retain it across further writes, since it may be
// reallocated).
func (c *Chunk) Instructions() []byte {
	return c.instructions
}

// AddConstant appends v to the constant pool and returns its index.
func (c *Chunk) AddConstant(v value.Value) uint16 {
	c.constants = append(c.constants, v)
	return uint16(len(c.constants) - 1)
}

// PopInstruction removes the last emitted byte (used to backpatch a
// mis-emitted opcode during compilation).
func (c *Chunk) PopInstruction() {
	if len(c.instructions) == 0 {
		return
	}

	c.instructions = c.instructions[:len(c.instructions)-1]
}

// EmitOpCode appends a single opcode byte.
func (c *Chunk) EmitOpCode(op OpCode) {
	c.instructions = append(c.instructions, byte(op))
}

// WriteU8 appends a raw byte operand.
func (c *Chunk) WriteU8(b byte) {
	c.instructions = append(c.instructions, b)
}

// WriteBool appends a boolean operand as a single 0/1 byte.
func (c *Chunk) WriteBool(b bool) {
	if b {
		c.instructions = append(c.instructions, 1)
	} else {
		c.instructions = append(c.instructions, 0)
	}
}

// WriteU16 appends a big-endian u16 operand (jump targets, function ids,
// argument counts).
func (c *Chunk) WriteU16(n uint16) {
	c.instructions = append(c.instructions, byte(n>>8), byte(n))
}

// WriteU32 appends a big-endian u32 operand (array indices, iterator jump
// targets).
func (c *Chunk) WriteU32(n uint32) {
	c.instructions = append(c.instructions, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
}

// WriteBytes appends raw bytes verbatim.
func (c *Chunk) WriteBytes(b []byte) {
	c.instructions = append(c.instructions, b...)
}

// ChunkReader walks a Chunk's instruction stream one operand at a time. It
// mirrors Chunk's Write* methods: every encode has a matching decode.
type ChunkReader struct {
	chunk  *Chunk
	cursor int
}

// NewChunkReader constructs a reader positioned at the start of c's
// instruction stream.
func NewChunkReader(c *Chunk) *ChunkReader {
	return &ChunkReader{chunk: c}
}

// Pos returns the reader's current byte offset.
func (r *ChunkReader) Pos() int {
	return r.cursor
}

// Seek repositions the reader (used to follow a Jump/JumpIfFalse target).
func (r *ChunkReader) Seek(pos int) {
	r.cursor = pos
}

// HasNext reports whether any instruction byte remains unread.
func (r *ChunkReader) HasNext() bool {
	return r.cursor < len(r.chunk.instructions)
}

// ReadOpCode decodes the next instruction's tag byte.
func (r *ChunkReader) ReadOpCode() (OpCode, error) {
	b, err := r.ReadU8()
	if err != nil {
		return 0, err
	}

	op, ok := FromByte(b)
	if !ok {
		return 0, vmerrors.New(vmerrors.UnexpectedOperator)
	}

	return op, nil
}

// ReadU8 decodes a single raw byte operand.
func (r *ChunkReader) ReadU8() (byte, error) {
	if r.cursor >= len(r.chunk.instructions) {
		return 0, vmerrors.NewOutOfBounds(r.cursor, len(r.chunk.instructions))
	}

	b := r.chunk.instructions[r.cursor]
	r.cursor++

	return b, nil
}

// ReadBool decodes a boolean operand.
func (r *ChunkReader) ReadBool() (bool, error) {
	b, err := r.ReadU8()
	return b != 0, err
}

// ReadU16 decodes a big-endian u16 operand.
func (r *ChunkReader) ReadU16() (uint16, error) {
	hi, err := r.ReadU8()
	if err != nil {
		return 0, err
	}

	lo, err := r.ReadU8()
	if err != nil {
		return 0, err
	}

	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadU32 decodes a big-endian u32 operand.
func (r *ChunkReader) ReadU32() (uint32, error) {
	var out uint32
	for i := 0; i < 4; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}

		out = out<<8 | uint32(b)
	}

	return out, nil
}

// ReadConstant decodes a u16 constant-pool index and resolves it.
func (r *ChunkReader) ReadConstant() (value.Value, error) {
	idx, err := r.ReadU16()
	if err != nil {
		return value.Value{}, err
	}

	v, ok := r.chunk.Constant(int(idx))
	if !ok {
		return value.Value{}, vmerrors.NewOutOfBounds(int(idx), len(r.chunk.constants))
	}

	return v, nil
}
