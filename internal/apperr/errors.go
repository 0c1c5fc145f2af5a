package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when an order status change is not
// permitted from the order's current status. Terminal orders reject every
// further transition with this error.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrCodeMismatch is returned when the supplied delivery code does not match
// the one stored on the order. The order state is unchanged and the caller
// may retry with a corrected code.
var ErrCodeMismatch = errors.New("delivery code mismatch")
