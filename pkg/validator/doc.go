// Package validator provides small composable validation rules.
//
//	err := validator.Apply(
//		validator.RequiredString("userId", req.UserID),
//		validator.OneOf("plan", req.Plan, PlanMonthly, PlanYearly),
//		validator.ValidCurrencyCode("currency", req.Currency),
//	)
//
// Apply returns ValidationErrors when any rule fails; the HTTP layer renders
// them as a 422 with per-field messages.
package validator
