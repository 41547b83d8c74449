package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penpal-ai/database-service/pkg/validator"
	"github.com/penpal-ai/database-service/svc/subscription"
)

func TestCreateInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     subscription.CreateInput
		fields []string
	}{
		{
			name: "minimal",
			in:   subscription.CreateInput{UserID: "u1", StripeCustomerID: "cus_1"},
		},
		{
			name: "all optionals",
			in: subscription.CreateInput{
				UserID:           "u1",
				StripeCustomerID: "cus_1",
				Status:           ptr(subscription.StatusActive),
				Plan:             ptr(subscription.PlanYearly),
				TrialStart:       at(-day),
				TrialEnd:         at(6 * day),
				MonthlyPrice:     ptr(int64(0)),
				Currency:         ptr("USD"),
			},
		},
		{
			name:   "missing identifiers",
			in:     subscription.CreateInput{UserID: "  "},
			fields: []string{"userId", "stripeCustomerId"},
		},
		{
			name: "bad enums and prices",
			in: subscription.CreateInput{
				UserID:           "u1",
				StripeCustomerID: "cus_1",
				Status:           ptr(subscription.Status("paused")),
				Plan:             ptr(subscription.Plan("weekly")),
				YearlyPrice:      ptr(int64(-1)),
				Currency:         ptr("euro"),
			},
			fields: []string{"status", "plan", "yearlyPrice", "currency"},
		},
		{
			name: "trial ends before it starts",
			in: subscription.CreateInput{
				UserID:           "u1",
				StripeCustomerID: "cus_1",
				TrialStart:       at(day),
				TrialEnd:         at(-day),
			},
			fields: []string{"trialEnd"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.in.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			for _, f := range tt.fields {
				assert.True(t, verrs.Has(f), "expected error on %s", f)
			}
			assert.Len(t, verrs, len(tt.fields))
		})
	}
}

func TestPatch_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, subscription.Patch{}.Validate())
	assert.NoError(t, subscription.Patch{Status: ptr(subscription.StatusPastDue)}.Validate())

	err := subscription.Patch{
		StripeCustomerID: ptr(""),
		Plan:             ptr(subscription.Plan("lifetime")),
	}.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("stripeCustomerId"))
	assert.True(t, verrs.Has("plan"))
}

func TestCreateInput_Build(t *testing.T) {
	t.Parallel()

	sub := subscription.CreateInput{
		UserID:        "u1",
		Plan:          ptr(subscription.PlanYearly),
		IsTrialActive: ptr(false),
		Metadata:      map[string]any{"source": "web"},
	}.Build(now)

	assert.Equal(t, subscription.StatusTrial, sub.Status)
	assert.Equal(t, subscription.PlanYearly, sub.Plan)
	assert.False(t, sub.IsTrialActive)
	assert.Equal(t, subscription.DefaultYearlyPrice, sub.Amount())
	assert.Equal(t, "web", sub.Metadata["source"])
	assert.Equal(t, now, sub.CreatedAt)
	assert.Equal(t, now, sub.UpdatedAt)
	assert.True(t, sub.ID.IsZero())
}
