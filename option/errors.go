package option

import (
	"errors"
	"fmt"
)

var (
	ErrMessageFormat  = errors.New("message format error")
	ErrOutOfOrder     = errors.New("options out of order")
	ErrDeltaTooLarge  = errors.New("option delta too large")
	ErrValueTooLarge  = errors.New("option too big")
	ErrReservedNibble = errors.New("reserved option header nibble")
	ErrPayloadMarker  = errors.New("payload marker")
	ErrTruncated      = errors.New("truncated option")
)

// Error records the option and the operation that failed.
type Error struct {
	Op      string
	Number  Number
	Cause   error
	Details string
}

func (e Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s option %s: %v(%s)", e.Op, e.Number, e.Cause, e.Details)
	}
	return fmt.Sprintf("%s option %s: %v", e.Op, e.Number, e.Cause)
}

func (e Error) Unwrap() error {
	return e.Cause
}

// IsInvariantViolation reports whether err was caused by the caller
// building an unencodable option set: options out of ascending order,
// or a delta or value length beyond the 16-bit extended range. These are
// programming errors, not malformed peer input.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrOutOfOrder) ||
		errors.Is(err, ErrDeltaTooLarge) ||
		errors.Is(err, ErrValueTooLarge)
}
