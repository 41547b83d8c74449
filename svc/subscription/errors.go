package subscription

import "errors"

var (
	ErrNotFound          = errors.New("subscription: not found")
	ErrConflict          = errors.New("subscription: user already has a subscription")
	ErrInternal          = errors.New("subscription: internal error")
	ErrInvalidTransition = errors.New("subscription: status transition not allowed")
)
