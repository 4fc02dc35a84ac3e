package rational

import "math"

// reduce canonicalizes a raw numerator/denominator pair: divide both by their
// greatest common divisor, then carry the sign entirely on the numerator.
// Every constructed or computed value passes through here.
//
// The caller guarantees den != 0; division by the rational zero is rejected
// before the intermediate pair is formed.
func reduce(op string, num, den int64) (Rational, error) {
	negative := (num < 0) != (den < 0)

	n := magnitude(num)
	d := magnitude(den)

	g := gcd(n, d)
	// g >= 1 because d >= 1.
	n /= g
	d /= g

	if d > math.MaxInt64 {
		return Rational{}, newOverflowError(op, "reduced denominator out of range")
	}

	var rn int64
	switch {
	case n == 0:
		// gcd(0, d) = d, so d is already 1 here.
		rn = 0
	case negative:
		if n > magnitude(math.MinInt64) {
			return Rational{}, newOverflowError(op, "reduced numerator out of range")
		}
		if n == magnitude(math.MinInt64) {
			rn = math.MinInt64
		} else {
			rn = -int64(n)
		}
	default:
		if n > math.MaxInt64 {
			return Rational{}, newOverflowError(op, "reduced numerator out of range")
		}
		rn = int64(n)
	}

	return Rational{num: rn, den: int64(d)}, nil
}

// gcd computes the greatest common divisor of two non-negative integers with
// the Euclidean algorithm. gcd(0, b) = b, gcd(a, 0) = a.
//
// Operating on uint64 magnitudes makes the non-negative invariant total: the
// remainder sign convention of % can never come into play.
func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// magnitude returns |x| as a uint64. Total on all of int64, including
// math.MinInt64, whose magnitude (2^63) does not fit in int64.
func magnitude(x int64) uint64 {
	if x >= 0 {
		return uint64(x)
	}
	return uint64(-(x + 1)) + 1
}
