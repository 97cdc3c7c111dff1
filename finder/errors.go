package finder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDomain indicates N < 1 or more present values than the domain holds.
	ErrInvalidDomain = errors.New("finder: invalid domain")

	// ErrInputIntegrity indicates the present array has duplicates or out-of-domain values.
	ErrInputIntegrity = errors.New("finder: input integrity fault")

	// ErrBudgetExceeded indicates a quadratic baseline refused an input that is too large.
	ErrBudgetExceeded = errors.New("finder: work budget exceeded")
)

// RangeError reports an integrity fault detected while resolving [Lo, Hi].
type RangeError struct {
	Lo, Hi   int64
	Count    int64 // elements observed in the range
	Expected int64 // size of the range
	Reason   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("finder: input integrity fault in [%d, %d]: %s (count %d, expected %d)",
		e.Lo, e.Hi, e.Reason, e.Count, e.Expected)
}

// Unwrap makes errors.Is(err, ErrInputIntegrity) hold.
func (e *RangeError) Unwrap() error {
	return ErrInputIntegrity
}

func integrityFault(lo, hi, count int64, reason string) error {
	return &RangeError{Lo: lo, Hi: hi, Count: count, Expected: hi - lo + 1, Reason: reason}
}
