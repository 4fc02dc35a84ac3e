package rational

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want uint64
	}{
		{"both zero", 0, 0, 0},
		{"zero left", 0, 9, 9},
		{"zero right", 9, 0, 9},
		{"coprime", 7, 13, 1},
		{"divides", 4, 12, 4},
		{"common factor", 12, 18, 6},
		{"large", 1 << 62, 1 << 30, 1 << 30},
		{"fibonacci worst case", 832040, 514229, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gcd(tt.a, tt.b))
			assert.Equal(t, tt.want, gcd(tt.b, tt.a))
		})
	}
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		name string
		x    int64
		want uint64
	}{
		{"zero", 0, 0},
		{"positive", 42, 42},
		{"negative", -42, 42},
		{"max int64", math.MaxInt64, math.MaxInt64},
		{"min int64", math.MinInt64, 1 << 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, magnitude(tt.x))
		})
	}
}

func TestReduceMinInt64Edges(t *testing.T) {
	// |MinInt64| = 2^63 exceeds MaxInt64, so these pairs only canonicalize
	// when the shared factor shrinks the magnitude back into range.
	r, err := New(math.MinInt64, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64/2), r.Num())
	assert.Equal(t, int64(1), r.Den())

	r, err = New(math.MinInt64, math.MinInt64)
	require.NoError(t, err)
	assert.Equal(t, One, r)

	// Sign normalization would need +2^63 as numerator.
	_, err = New(math.MinInt64, -1)
	require.Error(t, err)
	assert.True(t, IsOverflow(err))

	// Sign normalization would need +2^63 as denominator.
	_, err = New(3, math.MinInt64)
	require.Error(t, err)
	assert.True(t, IsOverflow(err))

	// An even numerator shares a factor of 2 with |MinInt64|.
	r, err = New(6, math.MinInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), r.Num())
	assert.Equal(t, int64(1)<<62, r.Den())
}

func TestArithmeticOverflowIsChecked(t *testing.T) {
	huge := FromInt(math.MaxInt64)

	_, err := huge.Add(huge)
	require.Error(t, err)
	assert.True(t, IsOverflow(err))

	_, err = huge.Mul(huge)
	require.Error(t, err)
	assert.True(t, IsOverflow(err))

	_, err = FromInt(math.MinInt64).Sub(FromInt(1))
	require.Error(t, err)
	assert.True(t, IsOverflow(err))

	_, err = FromInt(2).Pow(63)
	require.Error(t, err)
	assert.True(t, IsOverflow(err))

	// The same magnitudes stay exact one step before the boundary.
	r, err := FromInt(2).Pow(62)
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<62, r.Num())

	// Cross-multiplication overflow in an operand product, not just the sum.
	a, err := New(1, math.MaxInt64)
	require.NoError(t, err)
	b, err := New(1, math.MaxInt64-1)
	require.NoError(t, err)
	_, err = a.Add(b)
	require.Error(t, err)
	assert.True(t, IsOverflow(err))
}

func TestCheckedHelpers(t *testing.T) {
	sum, err := checkedAdd("test", math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, err = checkedAdd("test", math.MaxInt64, 1)
	assert.True(t, IsOverflow(err))

	_, err = checkedAdd("test", math.MinInt64, -1)
	assert.True(t, IsOverflow(err))

	diff, err := checkedSub("test", math.MinInt64+1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), diff)

	_, err = checkedSub("test", math.MinInt64, 1)
	assert.True(t, IsOverflow(err))

	_, err = checkedSub("test", math.MaxInt64, -1)
	assert.True(t, IsOverflow(err))

	p, err := checkedMul("test", math.MinInt64, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), p)

	_, err = checkedMul("test", math.MinInt64, -1)
	assert.True(t, IsOverflow(err))

	_, err = checkedMul("test", math.MaxInt64, 2)
	assert.True(t, IsOverflow(err))

	p, err = checkedMul("test", 0, math.MinInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p)
}
