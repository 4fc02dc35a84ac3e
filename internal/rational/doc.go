// Package rational provides exact rational-number arithmetic on int64 pairs.
//
// This package contains the foundational value type. All other internal packages
// import rational; rational imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Every value produced by this package is canonical: denominator > 0,
//     numerator and denominator coprime, and zero is always (0, 1)
//   - NO floats anywhere - results are exact or they are errors
//   - Overflow policy is checked-fail: any computation whose intermediate or
//     final value does not fit in int64 returns an OVERFLOW error rather than
//     silently wrapping
//   - No panics in the public API; failures are structured *Error values
//     distinguishable with errors.As
package rational
