package subscription

import "github.com/penpal-ai/database-service/pkg/validator"

func (in CreateInput) Validate() error {
	rules := []validator.Rule{
		validator.RequiredString("userId", in.UserID),
		validator.MaxLenString("userId", in.UserID, 128),
		validator.RequiredString("stripeCustomerId", in.StripeCustomerID),
		validator.Chronological("trialEnd", in.TrialStart, in.TrialEnd),
		validator.Chronological("currentPeriodEnd", in.CurrentPeriodStart, in.CurrentPeriodEnd),
	}
	rules = append(rules, optionalRules(in.Status, in.Plan, in.MonthlyPrice, in.YearlyPrice, in.Currency)...)
	return validator.Apply(rules...)
}

func (p Patch) Validate() error {
	rules := []validator.Rule{
		validator.Chronological("trialEnd", p.TrialStart, p.TrialEnd),
		validator.Chronological("currentPeriodEnd", p.CurrentPeriodStart, p.CurrentPeriodEnd),
	}
	if p.StripeCustomerID != nil {
		rules = append(rules, validator.RequiredString("stripeCustomerId", *p.StripeCustomerID))
	}
	rules = append(rules, optionalRules(p.Status, p.Plan, p.MonthlyPrice, p.YearlyPrice, p.Currency)...)
	return validator.Apply(rules...)
}

func optionalRules(status *Status, plan *Plan, monthly, yearly *int64, currency *string) []validator.Rule {
	var rules []validator.Rule
	if status != nil {
		rules = append(rules, ValidStatus(*status))
	}
	if plan != nil {
		rules = append(rules, ValidPlan(*plan))
	}
	if monthly != nil {
		rules = append(rules, validator.NonNegative("monthlyPrice", *monthly))
	}
	if yearly != nil {
		rules = append(rules, validator.NonNegative("yearlyPrice", *yearly))
	}
	if currency != nil {
		rules = append(rules, validator.ValidCurrencyCode("currency", *currency))
	}
	return rules
}

func ValidStatus(s Status) validator.Rule {
	return validator.OneOf("status", s, Statuses...)
}

func ValidPlan(p Plan) validator.Rule {
	return validator.OneOf("plan", p, Plans...)
}
