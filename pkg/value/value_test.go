package value

import (
	"testing"

	"github.com/consensys/cscript/pkg/types"
	"github.com/consensys/cscript/pkg/vmerrors"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTypeUnknownForNullAndEmptyContainers(t *testing.T) {
	assert.Equal(t, types.Unknown, Null().GetType().Kind())

	arr, err := NewArray(types.NewPrimitive(types.Unknown), nil)
	require.NoError(t, err)
	assert.Equal(t, types.Unknown, arr.GetType().Inner().Kind())

	opt := NewOptionalNone(types.NewPrimitive(types.Unknown))
	assert.Equal(t, types.Unknown, opt.GetType().Inner().Kind())
}

func TestArrayConstructorRejectsMixedElementTypes(t *testing.T) {
	_, err := NewArray(types.NewPrimitive(types.Unknown), []Value{
		NewU8(1),
		NewU16(2),
	})
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.OperationNotSameType, vmErr.Kind())
}

func TestIncrementDecrementWrap(t *testing.T) {
	v, err := NewU8(255).Increment()
	require.NoError(t, err)

	got, err := v.AsU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), got)

	v, err = NewU8(0).Decrement()
	require.NoError(t, err)

	got, err = v.AsU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got)
}

func TestIncrementNonNumberFails(t *testing.T) {
	_, err := NewBool(true).Increment()
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.OperationNotNumberType, vmErr.Kind())
}

func TestSharedCellAliasing(t *testing.T) {
	// Two paths sharing one cell must observe each other's mutation: this
	// is the core guarantee behind a.b[3]-style path expressions.
	cell := NewCell(NewU64(10))
	alias := cell.Transform()

	h := alias.HandleMut()
	h.Set(NewU64(99))
	h.Release()

	got, err := cell.Handle().Value().AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), got)
}

func TestDoubleMutableBorrowPanics(t *testing.T) {
	cell := NewCell(NewU64(1))
	cell.Transform()

	h1 := cell.HandleMut()
	defer h1.Release()

	assert.Panics(t, func() {
		cell.HandleMut()
	})
}

func TestIntoOwnedDeepCopiesNestedCells(t *testing.T) {
	inner := NewCell(NewU64(1))
	arr := NewArrayFromCells(types.NewPrimitive(types.U64), []*Cell{inner})
	outer := NewCell(arr)

	owned := outer.IntoOwned()

	// Mutating the original inner cell must not be observed through the
	// deep copy.
	mut := inner.HandleMut()
	mut.Set(NewU64(42))
	mut.Release()

	cells, err := owned.AsArray()
	require.NoError(t, err)

	v, err := cells[0].Handle().Value().AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestCastToTruncatingAlwaysSucceeds(t *testing.T) {
	src := NewU256(uint256.NewInt(300))

	v, err := src.CastTo(types.NewPrimitive(types.U8))
	require.NoError(t, err)

	got, err := v.AsU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(300-256), got)
}

func TestCheckedCastToFailsWhenOutOfRange(t *testing.T) {
	src := NewU256(uint256.NewInt(300))

	_, err := src.CheckedCastTo(types.NewPrimitive(types.U8))
	require.Error(t, err)

	var vmErr *vmerrors.Error
	require.ErrorAs(t, err, &vmErr)
	assert.Equal(t, vmerrors.CastError, vmErr.Kind())
}

func TestCastToStringFormatsNumber(t *testing.T) {
	v, err := NewU32(123).CastTo(types.NewPrimitive(types.String))
	require.NoError(t, err)

	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "123", s)
}

func TestEqualStructPositional(t *testing.T) {
	a := NewStruct(1, "Point", []Value{NewU64(3), NewU64(4)})
	b := NewStruct(1, "Point", []Value{NewU64(3), NewU64(4)})
	c := NewStruct(1, "Point", []Value{NewU64(3), NewU64(5)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestPathShareableAliasing(t *testing.T) {
	p := NewOwnedPath(NewU64(7))
	shared := p.Shareable()

	h := shared.cell.HandleMut()
	h.Set(NewU64(8))
	h.Release()

	// p's own cell was promoted in place by Shareable, so reading through
	// the original path observes the mutation too.
	got, err := p.AsRef().AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), got)
}

func TestPathAsMutCopiesOutOfBorrowed(t *testing.T) {
	cell := NewCell(NewU64(1))
	borrowed := NewBorrowedPath(cell)

	h := borrowed.AsMut()
	h.Set(NewU64(2))
	h.Release()

	// The original cell must be untouched: AsMut on a Borrowed path copies
	// out rather than mutating the aliased storage.
	got, err := cell.Handle().Value().AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got)

	got, err = borrowed.AsRef().AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)
}

func TestGetSubVariableArrayAndStruct(t *testing.T) {
	arr, err := NewArray(types.NewPrimitive(types.U64), []Value{NewU64(1), NewU64(2)})
	require.NoError(t, err)

	p := NewOwnedPath(arr)
	sub, err := p.GetSubVariable(1)
	require.NoError(t, err)

	got, err := sub.AsRef().AsU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)

	_, err = p.GetSubVariable(5)
	require.Error(t, err)
}
