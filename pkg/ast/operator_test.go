package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorIsAssignment(t *testing.T) {
	assert.True(t, Assign.IsAssignment())
	assert.True(t, AssignPlus.IsAssignment())
	assert.True(t, AssignPower.IsAssignment())
	assert.False(t, Plus.IsAssignment())
	assert.False(t, And.IsAssignment())
}

func TestOperatorIsShortCircuit(t *testing.T) {
	assert.True(t, And.IsShortCircuit())
	assert.True(t, Or.IsShortCircuit())
	assert.False(t, Plus.IsShortCircuit())
	assert.False(t, AssignPlus.IsShortCircuit())
}

func TestOperatorBinaryOperator(t *testing.T) {
	op, ok := AssignPlus.BinaryOperator()
	assert.True(t, ok)
	assert.Equal(t, Plus, op)

	op, ok = AssignPower.BinaryOperator()
	assert.True(t, ok)
	assert.Equal(t, Power, op)

	_, ok = Assign.BinaryOperator()
	assert.False(t, ok)

	_, ok = Plus.BinaryOperator()
	assert.False(t, ok)
}

func TestOperatorIsNumberOperator(t *testing.T) {
	assert.True(t, Plus.IsNumberOperator())
	assert.True(t, AssignPower.IsNumberOperator())
	assert.False(t, Equals.IsNumberOperator())
	assert.False(t, Assign.IsNumberOperator())
}
