package email

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/penpal-ai/database-service/pkg/notification"
)

const confirmationTag = "subscription-confirmation"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
<body>
<p>Hi {{.Name}},</p>
{{if .Trial}}<p>Your Penpal {{.Plan}} trial has started.{{if .TrialEnd}} It runs until {{.TrialEnd}}.{{end}}</p>
{{else}}<p>Your Penpal {{.Plan}} subscription is active.</p>
{{end}}<p>Price: {{.Amount}} per {{.Period}}.{{if .NextBilling}} Next billing date: {{.NextBilling}}.{{end}}</p>
<p>Thanks for learning with Penpal.</p>
</body>
</html>
`))

type confirmationView struct {
	Name        string
	Plan        string
	Period      string
	Trial       bool
	TrialEnd    string
	NextBilling string
	Amount      string
}

// ConfirmationNotifier sends the subscription confirmation as an e-mail
// instead of going through the notification service.
type ConfirmationNotifier struct {
	sender EmailSender
}

func NewConfirmationNotifier(sender EmailSender) *ConfirmationNotifier {
	return &ConfirmationNotifier{sender: sender}
}

func (n *ConfirmationNotifier) SendSubscriptionConfirmation(ctx context.Context, p notification.SubscriptionConfirmation) (bool, error) {
	body, err := RenderConfirmation(p)
	if err != nil {
		return false, err
	}

	subject := "Your Penpal subscription is active"
	if p.Status == "trial" {
		subject = "Your Penpal trial has started"
	}
	if err := n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   p.Email,
		Subject:  subject,
		BodyHTML: body,
		Tag:      confirmationTag,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// RenderConfirmation renders the confirmation e-mail body for p.
func RenderConfirmation(p notification.SubscriptionConfirmation) (string, error) {
	period := "month"
	if p.Plan == "yearly" {
		period = "year"
	}
	view := confirmationView{
		Name:        strings.TrimSpace(p.FirstName + " " + p.LastName),
		Plan:        p.Plan,
		Period:      period,
		Trial:       p.Status == "trial",
		TrialEnd:    formatDate(p.TrialEnd),
		NextBilling: formatDate(p.NextBillingDate),
		Amount:      FormatAmount(p.Amount, p.Currency),
	}
	if view.Name == "" {
		view.Name = "there"
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return "", errors.Join(ErrRenderTemplate, err)
	}
	return buf.String(), nil
}

// FormatAmount renders minor units as a localized price, e.g. 2000 "eur" -> "€ 20.00".
// Unknown currencies fall back to the raw code.
func FormatAmount(minor int64, code string) string {
	p := message.NewPrinter(language.English)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%.2f %s", float64(minor)/100, strings.ToUpper(code))
	}
	return p.Sprint(currency.Symbol(unit.Amount(float64(minor) / 100)))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2 January 2006")
}
