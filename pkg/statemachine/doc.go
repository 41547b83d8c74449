// Package statemachine describes legal transitions between states.
//
//	g := statemachine.New(statemachine.WithSelfTransitions[Status]()).
//		Allow(StatusTrial, StatusActive, StatusCanceled).
//		Allow(StatusActive, StatusPastDue, StatusUnpaid, StatusCanceled)
//
//	if err := g.Check(current, next); err != nil {
//		// errors.Is(err, statemachine.ErrTransitionNotAllowed)
//	}
package statemachine
