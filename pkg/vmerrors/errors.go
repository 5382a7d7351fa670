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

// Package vmerrors is the single, flat error taxonomy shared by every layer
// of cscript: the value/ownership layer, the type system, the environment
// and struct registry, the AST evaluator and the bytecode chunk codec. There
// are no exceptions or unwinds in this codebase: every fallible operation
// returns one of these values.
package vmerrors

import "fmt"

// Kind identifies which error condition occurred. Kept as a small integer
// enum (rather than one Go type per error, which the corpus also does for
// simpler taxonomies) so that callers can switch on it without type
// assertions, while a single Error type carries whatever context fields
// that particular kind needs.
type Kind int

const (
	// Typing
	InvalidValue Kind = iota
	InvalidType
	InvalidCastType
	ExpectedValueType
	UnknownType

	// Arithmetic
	OverflowOccured
	DivByZero
	CastError
	OperationNotNumberType
	OperationNotSameType

	// Shape
	OutOfBounds
	InvalidStructValue
	StructureNotFound
	StructureFieldNotFound
	InvalidStructField
	EmptyArrayConstructor

	// Name resolution
	VariableNotFound
	VariableAlreadyExists
	FunctionNotFound
	StructNameAlreadyUsed
	MappingNotFound
	NameAlreadyUsed

	// Control
	ExpectedPath
	ExpectedValue
	ExpectedAssignOperator
	UnexpectedOperator
	NoScopeFound
	NoExitCode
	FunctionEntry

	// Bounds
	LimitReached
	RecursiveLimitReached
)

var kindNames = map[Kind]string{
	InvalidValue:            "InvalidValue",
	InvalidType:             "InvalidType",
	InvalidCastType:         "InvalidCastType",
	ExpectedValueType:       "ExpectedValueType",
	UnknownType:             "UnknownType",
	OverflowOccured:         "OverflowOccured",
	DivByZero:               "DivByZero",
	CastError:               "CastError",
	OperationNotNumberType:  "OperationNotNumberType",
	OperationNotSameType:    "OperationNotSameType",
	OutOfBounds:             "OutOfBounds",
	InvalidStructValue:      "InvalidStructValue",
	StructureNotFound:       "StructureNotFound",
	StructureFieldNotFound:  "StructureFieldNotFound",
	InvalidStructField:      "InvalidStructField",
	EmptyArrayConstructor:   "EmptyArrayConstructor",
	VariableNotFound:        "VariableNotFound",
	VariableAlreadyExists:   "VariableAlreadyExists",
	FunctionNotFound:        "FunctionNotFound",
	StructNameAlreadyUsed:   "StructNameAlreadyUsed",
	MappingNotFound:         "MappingNotFound",
	NameAlreadyUsed:         "NameAlreadyUsed",
	ExpectedPath:            "ExpectedPath",
	ExpectedValue:           "ExpectedValue",
	ExpectedAssignOperator:  "ExpectedAssignOperator",
	UnexpectedOperator:      "UnexpectedOperator",
	NoScopeFound:            "NoScopeFound",
	NoExitCode:              "NoExitCode",
	FunctionEntry:           "FunctionEntry",
	LimitReached:            "LimitReached",
	RecursiveLimitReached:   "RecursiveLimitReached",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "UnknownKind"
}

// Error is a structured error which retains the kind of failure along with
// whatever context the kind carries (a value and the type it was expected
// to be, an index and a length, a name, etc). Error() renders all of it.
type Error struct {
	kind Kind
	// Context fields; not all kinds populate all of them.
	got    fmt.Stringer
	want   fmt.Stringer
	name   string
	index  int
	length int
	argTypes []fmt.Stringer
}

// Kind returns the classification of this error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.kind {
	case InvalidValue:
		return fmt.Sprintf("invalid value: %s is not of type %s", e.got, e.want)
	case InvalidType:
		return fmt.Sprintf("invalid type: %s", e.want)
	case InvalidCastType:
		return fmt.Sprintf("invalid cast type: %s", e.want)
	case ExpectedValueType:
		return fmt.Sprintf("expected value of type %s", e.want)
	case OperationNotSameType:
		return fmt.Sprintf("operation requires same type, got %s and %s", e.got, e.want)
	case OutOfBounds:
		return fmt.Sprintf("index %d out of bounds for length %d", e.index, e.length)
	case StructureNotFound:
		return fmt.Sprintf("structure not found: %s", e.name)
	case StructureFieldNotFound:
		return fmt.Sprintf("field %s not found on structure %s", e.want, e.name)
	case VariableNotFound:
		return fmt.Sprintf("variable not found: %s", e.name)
	case VariableAlreadyExists:
		return fmt.Sprintf("variable already exists: %s", e.name)
	case FunctionNotFound:
		return fmt.Sprintf("function not found: %s%s", e.name, e.argTypes)
	case StructNameAlreadyUsed:
		return fmt.Sprintf("structure name already used: %s", e.name)
	case NameAlreadyUsed:
		return fmt.Sprintf("name already used: %s", e.name)
	case FunctionEntry:
		return fmt.Sprintf("function entry mismatch: expected %s, got %s", e.want, e.got)
	default:
		return e.kind.String()
	}
}

// Is allows errors.Is(err, vmerrors.New(Kind)) style comparisons against a
// bare kind sentinel.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return other.kind == e.kind
}

type stringerString string

func (s stringerString) String() string { return string(s) }

// New constructs a bare error carrying only a kind, for kinds with no
// context (LimitReached, RecursiveLimitReached, NoExitCode, ExpectedPath,
// ExpectedValue, ExpectedAssignOperator, UnexpectedOperator, NoScopeFound,
// DivByZero, OverflowOccured, CastError, OperationNotNumberType,
// UnknownType, EmptyArrayConstructor, MappingNotFound, InvalidStructField,
// InvalidStructValue).
func New(kind Kind) *Error {
	return &Error{kind: kind}
}

// NewInvalidValue reports that got does not have the expected type.
func NewInvalidValue(got, want fmt.Stringer) *Error {
	return &Error{kind: InvalidValue, got: got, want: want}
}

// NewInvalidType reports an illegal use of the given type.
func NewInvalidType(t fmt.Stringer) *Error {
	return &Error{kind: InvalidType, want: t}
}

// NewInvalidCastType reports that a cast to the given type is not defined.
func NewInvalidCastType(t fmt.Stringer) *Error {
	return &Error{kind: InvalidCastType, want: t}
}

// NewExpectedValueType reports a type mismatch where a value of the given
// type was required.
func NewExpectedValueType(t fmt.Stringer) *Error {
	return &Error{kind: ExpectedValueType, want: t}
}

// NewOperationNotSameType reports that a binary operation was attempted
// between two different types.
func NewOperationNotSameType(a, b fmt.Stringer) *Error {
	return &Error{kind: OperationNotSameType, got: a, want: b}
}

// NewOutOfBounds reports an array or path index outside [0, length).
func NewOutOfBounds(index, length int) *Error {
	return &Error{kind: OutOfBounds, index: index, length: length}
}

// NewStructureNotFound reports that no struct type is registered under name.
func NewStructureNotFound(name string) *Error {
	return &Error{kind: StructureNotFound, name: name}
}

// NewStructureFieldNotFound reports that structName has no field named field.
func NewStructureFieldNotFound(structName, field string) *Error {
	return &Error{kind: StructureFieldNotFound, name: structName, want: stringerString(field)}
}

// NewVariableNotFound reports that no binding exists for name in the
// current scope stack (or struct instance, for a receiver lookup).
func NewVariableNotFound(name string) *Error {
	return &Error{kind: VariableNotFound, name: name}
}

// NewVariableAlreadyExists reports a duplicate binding within one scope.
func NewVariableAlreadyExists(name string) *Error {
	return &Error{kind: VariableAlreadyExists, name: name}
}

// NewFunctionNotFound reports that no registered function matches name
// against the given argument types.
func NewFunctionNotFound(name string, argTypes []fmt.Stringer) *Error {
	return &Error{kind: FunctionNotFound, name: name, argTypes: argTypes}
}

// NewStructNameAlreadyUsed reports a duplicate struct registration.
func NewStructNameAlreadyUsed(name string) *Error {
	return &Error{kind: StructNameAlreadyUsed, name: name}
}

// NewNameAlreadyUsed reports a duplicate name within one registry layer.
func NewNameAlreadyUsed(name string) *Error {
	return &Error{kind: NameAlreadyUsed, name: name}
}

// NewFunctionEntry reports a call-site/declaration mismatch on the entry
// flag: want is "true"/"false" for expected, got likewise for actual.
func NewFunctionEntry(want, got bool) *Error {
	return &Error{kind: FunctionEntry, want: stringerString(fmt.Sprintf("%v", want)), got: stringerString(fmt.Sprintf("%v", got))}
}
