package payment

import "errors"

var (
	ErrNotFound      = errors.New("payment: not found")
	ErrConflict      = errors.New("payment: payment intent already recorded")
	ErrInternal      = errors.New("payment: internal error")
	ErrCreateIndexes = errors.New("payment: failed to create indexes")
)
