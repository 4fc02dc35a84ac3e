package rational

import (
	"fmt"
)

// Rational is an exact fraction with an int64 numerator and a positive int64
// denominator, always held in canonical form: the denominator is positive,
// numerator and denominator are coprime, and zero is represented as (0, 1).
//
// Rational is an immutable value type. Operations never mutate their
// operands; each returns a fresh canonical value. Values can therefore be
// shared freely across goroutines without synchronization, and two values
// constructed by this package are equal exactly when == reports them equal.
//
// The zero value of the struct is NOT a valid Rational; use Zero, One,
// FromInt, or New.
type Rational struct {
	num int64
	den int64
}

// Common values.
var (
	Zero = Rational{num: 0, den: 1}
	One  = Rational{num: 1, den: 1}
)

// New creates the canonical Rational num/den.
// Returns an INVALID_ARGUMENT error when den is zero; this is the only
// construction failure besides overflow of the reduced pair.
//
// Examples:
//
//	New(4, 8)   -> 1/2
//	New(-3, -9) -> 1/3
//	New(3, -4)  -> -3/4
//	New(0, 5)   -> 0/1
func New(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, newZeroDenominatorError("new")
	}
	return reduce("new", num, den)
}

// FromInt creates the Rational v/1. Integers are already canonical, so no
// reduction is needed.
func FromInt(v int64) Rational {
	return Rational{num: v, den: 1}
}

// Num returns the numerator. The sign of the value lives here.
func (r Rational) Num() int64 { return r.num }

// Den returns the denominator, always positive for constructed values.
func (r Rational) Den() int64 { return r.den }

// IsZero returns true if the value is zero.
func (r Rational) IsZero() bool { return r.num == 0 }

// Sign returns -1, 0, or 1 according to the sign of the value.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two canonical values are the same rational number.
// Canonical form makes this plain field equality.
func (r Rational) Equal(other Rational) bool { return r == other }

// String renders the value as "num/den", or just "num" for integers.
func (r Rational) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Add returns r + other as a canonical value.
//
// Algorithm: a/b + c/d = (a*d + c*b) / (b*d), then reduce.
func (r Rational) Add(other Rational) (Rational, error) {
	ad, err := checkedMul("add", r.num, other.den)
	if err != nil {
		return Rational{}, err
	}
	cb, err := checkedMul("add", other.num, r.den)
	if err != nil {
		return Rational{}, err
	}
	num, err := checkedAdd("add", ad, cb)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul("add", r.den, other.den)
	if err != nil {
		return Rational{}, err
	}
	return reduce("add", num, den)
}

// Sub returns r - other as a canonical value.
func (r Rational) Sub(other Rational) (Rational, error) {
	ad, err := checkedMul("sub", r.num, other.den)
	if err != nil {
		return Rational{}, err
	}
	cb, err := checkedMul("sub", other.num, r.den)
	if err != nil {
		return Rational{}, err
	}
	num, err := checkedSub("sub", ad, cb)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul("sub", r.den, other.den)
	if err != nil {
		return Rational{}, err
	}
	return reduce("sub", num, den)
}

// Mul returns r * other as a canonical value.
func (r Rational) Mul(other Rational) (Rational, error) {
	num, err := checkedMul("mul", r.num, other.num)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul("mul", r.den, other.den)
	if err != nil {
		return Rational{}, err
	}
	return reduce("mul", num, den)
}

// Div returns r / other as a canonical value.
// Returns a DIVISION_BY_ZERO error when other is zero. A zero denominator
// cannot occur here: canonical operands carry their sign in the numerator.
func (r Rational) Div(other Rational) (Rational, error) {
	if other.num == 0 {
		return Rational{}, newDivisionByZeroError("div")
	}
	num, err := checkedMul("div", r.num, other.den)
	if err != nil {
		return Rational{}, err
	}
	den, err := checkedMul("div", r.den, other.num)
	if err != nil {
		return Rational{}, err
	}
	return reduce("div", num, den)
}

// Neg returns -r. Negating the numerator of a canonical value cannot break
// canonical form, except for the one numerator with no int64 negation.
func (r Rational) Neg() (Rational, error) {
	n, err := checkedMul("neg", r.num, -1)
	if err != nil {
		return Rational{}, err
	}
	return Rational{num: n, den: r.den}, nil
}

// Pow returns r raised to an integer exponent.
//
//   - exp == 0 returns One for every base, including Zero (convention, not a
//     computed limit)
//   - exp > 0 returns num^exp / den^exp, reduced
//   - exp < 0 raises the reciprocal to |exp|; a zero base fails with a
//     DIVISION_BY_ZERO error since the reciprocal of zero is undefined
//
// A canonical base stays coprime under powering, but the result is still
// routed through reduce so the canonical-form invariant holds by
// construction rather than by argument.
func (r Rational) Pow(exp int64) (Rational, error) {
	if exp == 0 {
		return One, nil
	}

	base := r
	if exp < 0 {
		if r.num == 0 {
			return Rational{}, newDivisionByZeroError("pow")
		}
		base = Rational{num: r.den, den: r.num}
	}

	num, err := ipow("pow", base.num, magnitude(exp))
	if err != nil {
		return Rational{}, err
	}
	den, err := ipow("pow", base.den, magnitude(exp))
	if err != nil {
		return Rational{}, err
	}
	return reduce("pow", num, den)
}

// ipow computes b^e by repeated squaring with checked multiplication.
// e >= 1 at every call site.
func ipow(op string, b int64, e uint64) (int64, error) {
	result := int64(1)
	for e > 0 {
		var err error
		if e&1 == 1 {
			result, err = checkedMul(op, result, b)
			if err != nil {
				return 0, err
			}
		}
		e >>= 1
		if e > 0 {
			b, err = checkedMul(op, b, b)
			if err != nil {
				return 0, err
			}
		}
	}
	return result, nil
}
