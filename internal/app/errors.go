package app

import "errors"

var (
	ErrUnknownNotifier = errors.New("app: unknown notifier backend")
	ErrInit            = errors.New("app: initialization failed")
)
