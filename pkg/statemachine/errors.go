package statemachine

import (
	"errors"
	"fmt"
)

// ErrTransitionNotAllowed is matched by every *TransitionError via errors.Is.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition from %q to %q is not allowed", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrTransitionNotAllowed
}
