package notification

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPayload   = errors.New("notification: invalid payload")
	ErrRequestFailed    = errors.New("notification: request failed")
	ErrUnexpectedStatus = errors.New("notification: unexpected response status")
	ErrInvalidResponse  = errors.New("notification: invalid response body")
	ErrRejected         = errors.New("notification: rejected by notification service")
	ErrCircuitOpen      = errors.New("notification: circuit breaker is open")
)

// StatusError is returned for non-2xx answers. It matches ErrUnexpectedStatus.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
