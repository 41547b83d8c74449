package subscription

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Status string

const (
	StatusTrial    Status = "trial"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
	StatusUnpaid   Status = "unpaid"
)

// Statuses lists every valid Status in declaration order.
var Statuses = []Status{StatusTrial, StatusActive, StatusPastDue, StatusCanceled, StatusUnpaid}

type Plan string

const (
	PlanMonthly Plan = "monthly"
	PlanYearly  Plan = "yearly"
)

var Plans = []Plan{PlanMonthly, PlanYearly}

const (
	DefaultMonthlyPrice int64 = 2000
	DefaultYearlyPrice  int64 = 20000
	DefaultCurrency           = "eur"
)

// Subscription is the single billing record of a user. Prices are in minor units.
type Subscription struct {
	ID                   bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID               string         `bson:"userId" json:"userId"`
	StripeCustomerID     string         `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string         `bson:"stripeSubscriptionId,omitempty" json:"stripeSubscriptionId,omitempty"`
	Status               Status         `bson:"status" json:"status"`
	Plan                 Plan           `bson:"plan" json:"plan"`
	TrialStart           *time.Time     `bson:"trialStart,omitempty" json:"trialStart,omitempty"`
	TrialEnd             *time.Time     `bson:"trialEnd,omitempty" json:"trialEnd,omitempty"`
	CurrentPeriodStart   *time.Time     `bson:"currentPeriodStart,omitempty" json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd     *time.Time     `bson:"currentPeriodEnd,omitempty" json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd    bool           `bson:"cancelAtPeriodEnd" json:"cancelAtPeriodEnd"`
	CardValidated        bool           `bson:"cardValidated" json:"cardValidated"`
	CanceledAt           *time.Time     `bson:"canceledAt,omitempty" json:"canceledAt,omitempty"`
	NextBillingDate      *time.Time     `bson:"nextBillingDate,omitempty" json:"nextBillingDate,omitempty"`
	IsTrialActive        bool           `bson:"isTrialActive" json:"isTrialActive"`
	MonthlyPrice         int64          `bson:"monthlyPrice" json:"monthlyPrice"`
	YearlyPrice          int64          `bson:"yearlyPrice" json:"yearlyPrice"`
	Currency             string         `bson:"currency" json:"currency"`
	Metadata             map[string]any `bson:"metadata" json:"metadata"`
	CreatedAt            time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Amount is the price of the current plan.
func (s *Subscription) Amount() int64 {
	if s.Plan == PlanYearly {
		return s.YearlyPrice
	}
	return s.MonthlyPrice
}

// CreateInput is the payload accepted by Create. Nil pointers take the defaults.
type CreateInput struct {
	UserID               string         `json:"userId"`
	StripeCustomerID     string         `json:"stripeCustomerId"`
	StripeSubscriptionID string         `json:"stripeSubscriptionId,omitempty"`
	Status               *Status        `json:"status,omitempty"`
	Plan                 *Plan          `json:"plan,omitempty"`
	TrialStart           *time.Time     `json:"trialStart,omitempty"`
	TrialEnd             *time.Time     `json:"trialEnd,omitempty"`
	CurrentPeriodStart   *time.Time     `json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd     *time.Time     `json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd    *bool          `json:"cancelAtPeriodEnd,omitempty"`
	CardValidated        *bool          `json:"cardValidated,omitempty"`
	CanceledAt           *time.Time     `json:"canceledAt,omitempty"`
	NextBillingDate      *time.Time     `json:"nextBillingDate,omitempty"`
	IsTrialActive        *bool          `json:"isTrialActive,omitempty"`
	MonthlyPrice         *int64         `json:"monthlyPrice,omitempty"`
	YearlyPrice          *int64         `json:"yearlyPrice,omitempty"`
	Currency             *string        `json:"currency,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
}

// Build applies schema defaults and returns the record to insert.
func (in CreateInput) Build(now time.Time) Subscription {
	sub := Subscription{
		UserID:               in.UserID,
		StripeCustomerID:     in.StripeCustomerID,
		StripeSubscriptionID: in.StripeSubscriptionID,
		Status:               deref(in.Status, StatusTrial),
		Plan:                 deref(in.Plan, PlanMonthly),
		TrialStart:           in.TrialStart,
		TrialEnd:             in.TrialEnd,
		CurrentPeriodStart:   in.CurrentPeriodStart,
		CurrentPeriodEnd:     in.CurrentPeriodEnd,
		CancelAtPeriodEnd:    deref(in.CancelAtPeriodEnd, false),
		CardValidated:        deref(in.CardValidated, false),
		CanceledAt:           in.CanceledAt,
		NextBillingDate:      in.NextBillingDate,
		IsTrialActive:        deref(in.IsTrialActive, true),
		MonthlyPrice:         deref(in.MonthlyPrice, DefaultMonthlyPrice),
		YearlyPrice:          deref(in.YearlyPrice, DefaultYearlyPrice),
		Currency:             deref(in.Currency, DefaultCurrency),
		Metadata:             in.Metadata,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if sub.Metadata == nil {
		sub.Metadata = map[string]any{}
	}
	return sub
}

// Patch is a partial update. Only non-nil fields are written.
type Patch struct {
	StripeCustomerID     *string        `json:"stripeCustomerId,omitempty" bson:"stripeCustomerId,omitempty"`
	StripeSubscriptionID *string        `json:"stripeSubscriptionId,omitempty" bson:"stripeSubscriptionId,omitempty"`
	Status               *Status        `json:"status,omitempty" bson:"status,omitempty"`
	Plan                 *Plan          `json:"plan,omitempty" bson:"plan,omitempty"`
	TrialStart           *time.Time     `json:"trialStart,omitempty" bson:"trialStart,omitempty"`
	TrialEnd             *time.Time     `json:"trialEnd,omitempty" bson:"trialEnd,omitempty"`
	CurrentPeriodStart   *time.Time     `json:"currentPeriodStart,omitempty" bson:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd     *time.Time     `json:"currentPeriodEnd,omitempty" bson:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd    *bool          `json:"cancelAtPeriodEnd,omitempty" bson:"cancelAtPeriodEnd,omitempty"`
	CardValidated        *bool          `json:"cardValidated,omitempty" bson:"cardValidated,omitempty"`
	CanceledAt           *time.Time     `json:"canceledAt,omitempty" bson:"canceledAt,omitempty"`
	NextBillingDate      *time.Time     `json:"nextBillingDate,omitempty" bson:"nextBillingDate,omitempty"`
	IsTrialActive        *bool          `json:"isTrialActive,omitempty" bson:"isTrialActive,omitempty"`
	MonthlyPrice         *int64         `json:"monthlyPrice,omitempty" bson:"monthlyPrice,omitempty"`
	YearlyPrice          *int64         `json:"yearlyPrice,omitempty" bson:"yearlyPrice,omitempty"`
	Currency             *string        `json:"currency,omitempty" bson:"currency,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
