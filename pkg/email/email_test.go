package email_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/penpal-ai/database-service/pkg/email"
	"github.com/penpal-ai/database-service/pkg/notification"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{SendTo: "ada@example.com", Subject: "Hi", BodyHTML: "<p>x</p>"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
	}{
		{"no recipient", func(p *email.SendEmailParams) { p.SendTo = "" }},
		{"bad recipient", func(p *email.SendEmailParams) { p.SendTo = "not-an-address" }},
		{"display name", func(p *email.SendEmailParams) { p.SendTo = "Ada <ada@example.com>" }},
		{"no subject", func(p *email.SendEmailParams) { p.Subject = " " }},
		{"no body", func(p *email.SendEmailParams) { p.BodyHTML = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestNewPostmarkClient(t *testing.T) {
	t.Parallel()

	cfg := email.Config{
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "noreply@penpal.ai",
		SupportEmail:         "support@penpal.ai",
	}
	client, err := email.NewPostmarkClient(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)

	missing := cfg
	missing.PostmarkAccountToken = ""
	_, err = email.NewPostmarkClient(missing)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	badSender := cfg
	badSender.SenderEmail = "nope"
	_, err = email.NewPostmarkClient(badSender)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "ada@example.com",
		Subject:  "Your trial / started!",
		BodyHTML: "<p>hello</p>",
	})
	require.NoError(t, err)

	html, err := filepath.Glob(filepath.Join(dir, "*_your_trial__started.html"))
	require.NoError(t, err)
	require.Len(t, html, 1)
	body, err := os.ReadFile(html[0])
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", string(body))

	meta, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, meta, 1)

	assert.ErrorIs(t, sender.SendEmail(context.Background(), email.SendEmailParams{}), email.ErrInvalidParams)
}

func TestRenderConfirmation(t *testing.T) {
	t.Parallel()

	trialEnd := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	body, err := email.RenderConfirmation(notification.SubscriptionConfirmation{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "<Lovelace>",
		Plan:      "monthly",
		Status:    "trial",
		TrialEnd:  &trialEnd,
		Amount:    2000,
		Currency:  "eur",
		UserID:    "u1",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Hi Ada &lt;Lovelace&gt;,")
	assert.Contains(t, body, "trial has started")
	assert.Contains(t, body, "9 March 2025")
	assert.Contains(t, body, "€ 20.00 per month")
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "€ 200.00", email.FormatAmount(20000, "eur"))
	assert.Equal(t, "12.34 XYZ1", email.FormatAmount(1234, "xyz1"))
}

func TestConfirmationNotifier(t *testing.T) {
	t.Parallel()

	p := notification.SubscriptionConfirmation{
		Email:    "ada@example.com",
		Plan:     "yearly",
		Status:   "active",
		Amount:   20000,
		Currency: "eur",
		UserID:   "u1",
	}

	t.Run("sends", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(params email.SendEmailParams) bool {
			return params.SendTo == "ada@example.com" &&
				params.Subject == "Your Penpal subscription is active" &&
				params.Tag == "subscription-confirmation"
		})).Return(nil).Once()

		ok, err := email.NewConfirmationNotifier(sender).SendSubscriptionConfirmation(context.Background(), p)
		require.NoError(t, err)
		assert.True(t, ok)
		sender.AssertExpectations(t)
	})

	t.Run("send failure", func(t *testing.T) {
		t.Parallel()
		sender := &mockSender{}
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		ok, err := email.NewConfirmationNotifier(sender).SendSubscriptionConfirmation(context.Background(), p)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
