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

// Package bytecode defines the wire contract for cscript's stack-based VM:
// the opcode set, the Chunk container (constant pool + instruction stream),
// and the reader/writer pair that (de)serializes one. The VM's execution
// loop itself is out of scope (the tree-walking evaluator in pkg/interpreter
// is the only evaluation path this module runs); this package exists so the
// wire format a future VM would consume is fully specified and round-trips.
package bytecode

import "github.com/bits-and-blooms/bitset"

// OpCode is a single VM instruction's tag byte. Numbering is fixed (it is
// part of the wire format) and matches the reference bytecode compiler
// verbatim, byte for byte.
type OpCode uint8

const (
	Constant OpCode = iota
	MemoryLoad
	MemorySet
	SubLoad
	Pop
	Copy
	Copy2

	Swap
	Swap2

	Jump
	JumpIfFalse
	IterableLength
	IteratorBegin
	IteratorNext
	IteratorEnd

	Return

	ArrayCall
	Cast
	InvokeChunk
	SysCall
	NewArray
	NewStruct

	// Operators
	Add
	Sub
	Mul
	Div
	Mod
	Pow
	And
	Or
	Xor
	Shl
	Shr
	Eq
	Neg
	Gt
	Lt
	Gte
	Lte

	// Assign operators
	Assign
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignPow
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr

	Inc
	Dec

	NewRange

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	Constant:       "Constant",
	MemoryLoad:     "MemoryLoad",
	MemorySet:      "MemorySet",
	SubLoad:        "SubLoad",
	Pop:            "Pop",
	Copy:           "Copy",
	Copy2:          "Copy2",
	Swap:           "Swap",
	Swap2:          "Swap2",
	Jump:           "Jump",
	JumpIfFalse:    "JumpIfFalse",
	IterableLength: "IterableLength",
	IteratorBegin:  "IteratorBegin",
	IteratorNext:   "IteratorNext",
	IteratorEnd:    "IteratorEnd",
	Return:         "Return",
	ArrayCall:      "ArrayCall",
	Cast:           "Cast",
	InvokeChunk:    "InvokeChunk",
	SysCall:        "SysCall",
	NewArray:       "NewArray",
	NewStruct:      "NewStruct",
	Add:            "Add",
	Sub:            "Sub",
	Mul:            "Mul",
	Div:            "Div",
	Mod:            "Mod",
	Pow:            "Pow",
	And:            "And",
	Or:             "Or",
	Xor:            "Xor",
	Shl:            "Shl",
	Shr:            "Shr",
	Eq:             "Eq",
	Neg:            "Neg",
	Gt:             "Gt",
	Lt:             "Lt",
	Gte:            "Gte",
	Lte:            "Lte",
	Assign:         "Assign",
	AssignAdd:      "AssignAdd",
	AssignSub:      "AssignSub",
	AssignMul:      "AssignMul",
	AssignDiv:      "AssignDiv",
	AssignMod:      "AssignMod",
	AssignPow:      "AssignPow",
	AssignAnd:      "AssignAnd",
	AssignOr:       "AssignOr",
	AssignXor:      "AssignXor",
	AssignShl:      "AssignShl",
	AssignShr:      "AssignShr",
	Inc:            "Inc",
	Dec:            "Dec",
	NewRange:       "NewRange",
}

func (op OpCode) String() string {
	if op >= opcodeCount {
		return "Invalid"
	}

	return opcodeNames[op]
}

// validOpcodes is a dense bitset over the valid byte range, built once at
// init; IsValid combines a bounds comparison with a test of this set, so
// decode sites in the reader share one validity check.
var validOpcodes = func() *bitset.BitSet {
	b := bitset.New(uint(opcodeCount))
	for i := OpCode(0); i < opcodeCount; i++ {
		b.Set(uint(i))
	}

	return b
}()

// IsValid reports whether b decodes to a known OpCode.
func IsValid(b byte) bool {
	return uint(b) < uint(opcodeCount) && validOpcodes.Test(uint(b))
}

// FromByte decodes b into its OpCode, or false if b is out of range.
func FromByte(b byte) (OpCode, bool) {
	if !IsValid(b) {
		return 0, false
	}

	return OpCode(b), true
}

// assignOperatorOf maps a binary operator opcode to the compound-assignment
// opcode it composes with `=` (Add -> AssignAdd, etc). Transcribed from the
// reference compiler's as_assign_operator.
var assignOperatorOf = map[OpCode]OpCode{
	Add: AssignAdd,
	Sub: AssignSub,
	Mul: AssignMul,
	Div: AssignDiv,
	Mod: AssignMod,
	Pow: AssignPow,
	And: AssignAnd,
	Or:  AssignOr,
	Xor: AssignXor,
	Shl: AssignShl,
	Shr: AssignShr,
}

// AsAssignOperator returns the compound-assignment opcode for a binary
// operator opcode, and false if op has none (every non-arithmetic/bitwise
// opcode, plus the relational/equality ones, has no assign form).
func (op OpCode) AsAssignOperator() (OpCode, bool) {
	assign, ok := assignOperatorOf[op]
	return assign, ok
}
