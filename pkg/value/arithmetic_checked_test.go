package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCheckedOverflow(t *testing.T) {
	_, err := NewU8(250).AddChecked(NewU8(10))
	require.Error(t, err)

	v, err := NewU8(10).AddChecked(NewU8(20))
	require.NoError(t, err)
	n, _ := v.AsU8()
	assert.Equal(t, uint8(30), n)
}

func TestSubCheckedUnderflow(t *testing.T) {
	_, err := NewU16(1).SubChecked(NewU16(2))
	require.Error(t, err)

	v, err := NewU16(10).SubChecked(NewU16(3))
	require.NoError(t, err)
	n, _ := v.AsU16()
	assert.Equal(t, uint16(7), n)
}

func TestMulCheckedOverflow(t *testing.T) {
	_, err := NewU32(1 << 30).MulChecked(NewU32(4))
	require.Error(t, err)

	v, err := NewU32(3).MulChecked(NewU32(4))
	require.NoError(t, err)
	n, _ := v.AsU32()
	assert.Equal(t, uint32(12), n)
}

func TestMulChecked64Overflow(t *testing.T) {
	_, err := NewU64(1 << 63).MulChecked(NewU64(2))
	require.Error(t, err)

	v, err := NewU64(1000).MulChecked(NewU64(1000))
	require.NoError(t, err)
	n, _ := v.AsU64()
	assert.Equal(t, uint64(1000000), n)
}

func TestShlCheckedOutOfRangeShift(t *testing.T) {
	_, err := NewU8(1).ShlChecked(8)
	require.Error(t, err)

	v, err := NewU8(1).ShlChecked(3)
	require.NoError(t, err)
	n, _ := v.AsU8()
	assert.Equal(t, uint8(8), n)
}

func TestShrCheckedOutOfRangeShift(t *testing.T) {
	_, err := NewU16(1).ShrChecked(16)
	require.Error(t, err)
}

func TestCheckedArithmeticRejectsMixedKinds(t *testing.T) {
	_, err := NewU8(1).AddChecked(NewU16(1))
	require.Error(t, err)
}

func TestPowWraps(t *testing.T) {
	v, err := NewU8(2).Pow(NewU8(3))
	require.NoError(t, err)
	n, _ := v.AsU8()
	assert.Equal(t, uint8(8), n)

	wrapped, err := NewU8(2).Pow(NewU8(8))
	require.NoError(t, err)
	n, _ = wrapped.AsU8()
	assert.Equal(t, uint8(0), n)
}

func TestPowCheckedOverflow(t *testing.T) {
	_, err := NewU8(2).PowChecked(NewU8(8))
	require.Error(t, err)

	v, err := NewU8(2).PowChecked(NewU8(6))
	require.NoError(t, err)
	n, _ := v.AsU8()
	assert.Equal(t, uint8(64), n)
}

func TestAddCheckedU128Overflow(t *testing.T) {
	max := NewU128(U128{Hi: ^uint64(0), Lo: ^uint64(0)})
	_, err := max.AddChecked(NewU128(U128FromUint64(1)))
	require.Error(t, err)
}
