package rational

import (
	"errors"
	"fmt"
)

// Error represents a failure detected during rational arithmetic.
//
// Arithmetic errors include:
//   - Invalid argument: a constructor received a zero denominator
//   - Division by zero: dividing by the rational value zero, or raising
//     zero to a negative power
//   - Overflow: an intermediate or final value does not fit in int64
//
// Error includes structured fields so callers can distinguish the failure
// kinds required by the arithmetic contract.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that detected the failure ("new", "add", "div", ...).
	Op string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes arithmetic errors.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates a constructor received a zero denominator.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeDivisionByZero indicates division by the rational value zero,
	// including a negative power of zero.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeOverflow indicates a value that does not fit in int64.
	ErrCodeOverflow ErrorCode = "OVERFLOW"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidArgument returns true if the error is a zero-denominator
// construction error. Uses errors.As to handle wrapped errors.
func IsInvalidArgument(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeInvalidArgument
	}
	return false
}

// IsDivisionByZero returns true if the error is a division-by-zero error.
// Uses errors.As to handle wrapped errors.
func IsDivisionByZero(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeDivisionByZero
	}
	return false
}

// IsOverflow returns true if the error is an int64 overflow error.
// Uses errors.As to handle wrapped errors.
func IsOverflow(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeOverflow
	}
	return false
}

func newZeroDenominatorError(op string) *Error {
	return &Error{
		Code:    ErrCodeInvalidArgument,
		Op:      op,
		Message: "denominator is zero",
	}
}

func newDivisionByZeroError(op string) *Error {
	return &Error{
		Code:    ErrCodeDivisionByZero,
		Op:      op,
		Message: "division by zero",
	}
}

func newOverflowError(op, detail string) *Error {
	return &Error{
		Code:    ErrCodeOverflow,
		Op:      op,
		Message: fmt.Sprintf("int64 overflow: %s", detail),
	}
}
