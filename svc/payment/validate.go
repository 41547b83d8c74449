package payment

import "github.com/penpal-ai/database-service/pkg/validator"

func (in CreateInput) Validate() error {
	rules := []validator.Rule{
		validator.RequiredString("userId", in.UserID),
		validator.RequiredString("subscriptionId", in.SubscriptionID),
		validator.RequiredString("stripePaymentIntentId", in.StripePaymentIntentID),
		validator.MaxLenString("stripePaymentIntentId", in.StripePaymentIntentID, 255),
		ValidMethod(in.PaymentMethod),
		{
			Check: func() bool { return in.Amount != nil },
			Error: validator.ValidationError{Field: "amount", Message: "is required"},
		},
		validator.Chronological("billingPeriodEnd", in.BillingPeriodStart, in.BillingPeriodEnd),
	}
	if in.Amount != nil {
		rules = append(rules, validator.NonNegative("amount", *in.Amount))
	}
	if in.Status != nil {
		rules = append(rules, ValidStatus(*in.Status))
	}
	if in.Currency != nil {
		rules = append(rules, validator.ValidCurrencyCode("currency", *in.Currency))
	}
	if in.RefundedAmount != nil {
		rules = append(rules, validator.NonNegative("refundedAmount", *in.RefundedAmount))
	}
	return validator.Apply(rules...)
}

func (p Patch) Validate() error {
	rules := []validator.Rule{
		validator.Chronological("billingPeriodEnd", p.BillingPeriodStart, p.BillingPeriodEnd),
	}
	if p.Status != nil {
		rules = append(rules, ValidStatus(*p.Status))
	}
	if p.PaymentMethod != nil {
		rules = append(rules, ValidMethod(*p.PaymentMethod))
	}
	if p.Amount != nil {
		rules = append(rules, validator.NonNegative("amount", *p.Amount))
	}
	if p.RefundedAmount != nil {
		rules = append(rules, validator.NonNegative("refundedAmount", *p.RefundedAmount))
	}
	if p.Currency != nil {
		rules = append(rules, validator.ValidCurrencyCode("currency", *p.Currency))
	}
	return validator.Apply(rules...)
}

func ValidStatus(s Status) validator.Rule {
	return validator.OneOf("status", s, Statuses...)
}

func ValidMethod(m Method) validator.Rule {
	return validator.OneOf("paymentMethod", m, Methods...)
}
