package engine

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is returned when the wallet's total balance cannot
// cover the requested stream total.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrStreamNotFound is returned when an operation references an unknown
// stream id.
var ErrStreamNotFound = errors.New("stream not found")

// ErrIllegalTransition is returned when a lifecycle operation is not legal
// from the stream's current status, e.g. starting an already-active stream.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrStreamNotRemovable is returned when removal is requested for a stream
// that has not reached a terminal status.
var ErrStreamNotRemovable = errors.New("stream not in a removable state")

// ErrPersistence marks a failed snapshot write. The in-memory state is still
// valid when this is returned; the next successful mutation persists the
// latest snapshot.
var ErrPersistence = errors.New("failed to persist streams")

// ValidationError rejects a stream configuration before any state mutation.
// The caller must change the input before retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
