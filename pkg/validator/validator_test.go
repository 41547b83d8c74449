package validator_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penpal-ai/database-service/pkg/validator"
)

type plan string

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("userId", "u1"),
			validator.OneOf("plan", plan("yearly"), "monthly", "yearly"),
			validator.NonNegative("amount", 0),
			validator.ValidCurrencyCode("currency", "eur"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.RequiredString("userId", "  "),
			validator.OneOf("plan", plan("weekly"), "monthly", "yearly"),
			validator.NonNegative("amount", -1),
			validator.ValidCurrencyCode("currency", "euro"),
			validator.MaxLenString("description", "ééé", 2),
		)
		require.Error(t, err)

		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 5)
		assert.True(t, ve.Has("plan"))
		assert.Equal(t, []string{"must be one of: monthly, yearly"}, ve.Fields()["plan"])
		assert.Contains(t, err.Error(), "userId: is required")
	})
}

func TestValidCurrencyCode(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"eur", "EUR", "usd", "GBP"} {
		assert.NoError(t, validator.Apply(validator.ValidCurrencyCode("currency", code)), code)
	}
	for _, code := range []string{"", "eu", "xyz1", "ZZZ"} {
		assert.Error(t, validator.Apply(validator.ValidCurrencyCode("currency", code)), code)
	}
}

func TestChronological(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	assert.NoError(t, validator.Apply(validator.Chronological("trialEnd", &start, &end)))
	assert.NoError(t, validator.Apply(validator.Chronological("trialEnd", nil, &end)))
	assert.Error(t, validator.Apply(validator.Chronological("trialEnd", &end, &start)))
}

func TestWhen(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validator.When(false, validator.RequiredString("x", "")))
	assert.Error(t, validator.Apply(validator.When(true, validator.RequiredString("x", ""))...))
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	err := validator.Apply(validator.RequiredString("userId", ""))
	assert.True(t, validator.IsValidationError(fmt.Errorf("create: %w", err)))
	assert.False(t, validator.IsValidationError(errors.New("other")))
	assert.False(t, validator.IsValidationError(nil))
}
