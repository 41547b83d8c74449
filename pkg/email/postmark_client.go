package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers transactional mail through the Postmark API.
type PostmarkSender struct {
	api     *postmark.Client
	from    string
	replyTo string
}

// NewPostmarkClient validates cfg and returns a Postmark sender. Replies go to
// the support address.
func NewPostmarkClient(cfg Config) (*PostmarkSender, error) {
	switch {
	case !cfg.PostmarkConfigured():
		return nil, fmt.Errorf("%w: postmark server and account tokens are required", ErrInvalidConfig)
	case !validAddress(cfg.SenderEmail):
		return nil, fmt.Errorf("%w: sender %q is not a valid address", ErrInvalidConfig, cfg.SenderEmail)
	case !validAddress(cfg.SupportEmail):
		return nil, fmt.Errorf("%w: support %q is not a valid address", ErrInvalidConfig, cfg.SupportEmail)
	}

	return &PostmarkSender{
		api:     postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		from:    cfg.SenderEmail,
		replyTo: cfg.SupportEmail,
	}, nil
}

func (s *PostmarkSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	// Confirmation mails carry no links worth tracking.
	resp, err := s.api.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.replyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TextBody:   params.BodyText,
		TrackOpens: false,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode != 0 {
		return fmt.Errorf("%w: postmark code %d: %s", ErrFailedToSendEmail, resp.ErrorCode, resp.Message)
	}
	return nil
}
