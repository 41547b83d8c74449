package subscription

import (
	"errors"

	"github.com/penpal-ai/database-service/pkg/statemachine"
)

// TransitionPolicy decides whether a subscription may move between statuses.
type TransitionPolicy interface {
	Check(from, to Status) error
}

// PermissivePolicy allows every transition. The billing provider is the
// source of truth for status and its webhooks may arrive out of order.
type PermissivePolicy struct{}

func (PermissivePolicy) Check(Status, Status) error {
	return nil
}

// StrictPolicy only allows transitions along the billing lifecycle.
type StrictPolicy struct {
	graph *statemachine.Graph[Status]
}

// NewStrictPolicy builds the lifecycle graph:
//
//	trial -> active -> past_due -> canceled
//	              \-> unpaid
//
// plus recoveries from past_due and unpaid back to active, cancellation from
// any status, and self-transitions.
func NewStrictPolicy() *StrictPolicy {
	g := statemachine.New(statemachine.WithSelfTransitions[Status]()).
		Allow(StatusTrial, StatusActive).
		Allow(StatusActive, StatusPastDue, StatusUnpaid).
		Allow(StatusPastDue, StatusActive).
		Allow(StatusUnpaid, StatusActive).
		AllowFromAny(StatusCanceled, Statuses...)
	return &StrictPolicy{graph: g}
}

func (p *StrictPolicy) Check(from, to Status) error {
	if err := p.graph.Check(from, to); err != nil {
		return errors.Join(ErrInvalidTransition, err)
	}
	return nil
}
