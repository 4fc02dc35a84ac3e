package rational

import "math"

// Checked int64 helpers. Every arithmetic path in this package funnels its
// intermediate products and sums through these, so overflow surfaces as an
// OVERFLOW error instead of a silently wrapped value.

func checkedAdd(op string, a, b int64) (int64, error) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, newOverflowError(op, "sum out of range")
	}
	return s, nil
}

func checkedSub(op string, a, b int64) (int64, error) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, newOverflowError(op, "difference out of range")
	}
	return a - b, nil
}

func checkedMul(op string, a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, newOverflowError(op, "product out of range")
	}
	p := a * b
	if p/b != a {
		return 0, newOverflowError(op, "product out of range")
	}
	return p, nil
}
