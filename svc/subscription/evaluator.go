package subscription

import (
	"math"
	"time"
)

// Window is the activity of a subscription at one instant.
type Window struct {
	Active      bool
	TrialActive bool
	PaidActive  bool
	// DaysLeft is nil when neither the trial nor a paid period is running.
	DaysLeft *int
}

// Evaluate computes the activity window of sub at now.
// The trial is checked first, so its days win when both windows are open.
func Evaluate(sub *Subscription, now time.Time) Window {
	if sub == nil {
		return Window{}
	}

	var w Window
	w.TrialActive = sub.IsTrialActive && sub.TrialEnd != nil && sub.TrialEnd.After(now)
	w.PaidActive = sub.Status == StatusActive && sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.After(now)
	w.Active = w.TrialActive || w.PaidActive

	switch {
	case w.TrialActive:
		d := ceilDays(sub.TrialEnd.Sub(now))
		w.DaysLeft = &d
	case w.PaidActive:
		d := ceilDays(sub.CurrentPeriodEnd.Sub(now))
		w.DaysLeft = &d
	}
	return w
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}

// StatusView is the response of GetStatus.
type StatusView struct {
	Subscription  *Subscription `json:"subscription"`
	IsActive      bool          `json:"isActive"`
	IsTrialActive bool          `json:"isTrialActive"`
	DaysLeft      *int          `json:"daysLeft"`
}

// NewStatusView projects sub. A nil sub gives the all-empty view with a null daysLeft.
func NewStatusView(sub *Subscription, now time.Time) StatusView {
	if sub == nil {
		return StatusView{}
	}
	w := Evaluate(sub, now)
	return StatusView{
		Subscription:  sub,
		IsActive:      w.Active,
		IsTrialActive: w.TrialActive,
		DaysLeft:      w.DaysLeft,
	}
}

// AuthStatusView is the projection consumed by the auth service.
// DaysRemaining is never negative and is 0 when nothing is running.
type AuthStatusView struct {
	HasSubscription   bool       `json:"hasSubscription"`
	IsActive          bool       `json:"isActive"`
	Plan              *Plan      `json:"plan"`
	Status            *Status    `json:"status"`
	TrialActive       bool       `json:"trialActive"`
	DaysRemaining     int        `json:"daysRemaining"`
	NextBillingDate   *time.Time `json:"nextBillingDate,omitempty"`
	CancelAtPeriodEnd *bool      `json:"cancelAtPeriodEnd,omitempty"`
}

func NewAuthStatusView(sub *Subscription, now time.Time) AuthStatusView {
	if sub == nil {
		return AuthStatusView{}
	}
	w := Evaluate(sub, now)
	days := 0
	if w.DaysLeft != nil {
		days = max(0, *w.DaysLeft)
	}
	plan, status, cancel := sub.Plan, sub.Status, sub.CancelAtPeriodEnd
	return AuthStatusView{
		HasSubscription:   true,
		IsActive:          w.Active,
		Plan:              &plan,
		Status:            &status,
		TrialActive:       w.TrialActive,
		DaysRemaining:     days,
		NextBillingDate:   sub.NextBillingDate,
		CancelAtPeriodEnd: &cancel,
	}
}
