package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/pkg/requestid"
)

const (
	KindSubscriptionConfirmation = "subscription_confirmation"

	OutcomeSent        = "sent"
	OutcomeRejected    = "rejected"
	OutcomeFailed      = "failed"
	OutcomeCircuitOpen = "circuit_open"

	pathSubscriptionConfirmation = "/notifications/subscription-confirmation"
	pathHealth                   = "/notifications/health"
	headerAPIKey                 = "X-API-Key"
)

// SubscriptionConfirmation is the body sent when a subscription is created.
// Timestamps are encoded as RFC 3339.
type SubscriptionConfirmation struct {
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Plan            string     `json:"plan"`
	Status          string     `json:"status"`
	TrialEnd        *time.Time `json:"trialEnd,omitempty"`
	NextBillingDate *time.Time `json:"nextBillingDate,omitempty"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	UserID          string     `json:"userId"`
}

// Response is the notification service's reply.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Observer receives one call per send attempt outcome.
type Observer interface {
	NotificationResult(kind, outcome string)
}

// Client talks to the notification service over HTTP.
type Client struct {
	cfg      Config
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[Response]
	log      *slog.Logger
	observer Observer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cfg.BaseURL = strings.TrimRight(c.cfg.BaseURL, "/")
	c.log = c.log.With(logger.Component("notification"))

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	c.breaker = gobreaker.NewCircuitBreaker[Response](gobreaker.Settings{
		Name:        "notification-service",
		MaxRequests: 1,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Info("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			var se *StatusError
			return err == nil || errors.As(err, &se) && se.Code < 500
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})
	return c
}

// SendSubscriptionConfirmation posts p to the notification service.
// It returns true only when the service answers with success:true.
// Each attempt gets RequestTimeout; all attempts share Timeout.
func (c *Client) SendSubscriptionConfirmation(ctx context.Context, p SubscriptionConfirmation) (bool, error) {
	if p.Email == "" || p.UserID == "" {
		return false, fmt.Errorf("%w: email and userId are required", ErrInvalidPayload)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return false, errors.Join(ErrInvalidPayload, err)
	}

	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	var resp Response
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return c.fail(ctx, p, errors.Join(ErrRequestFailed, ctx.Err()), start)
			case <-time.After(backoff(c.cfg.RetryBackoff, attempt)):
			}
		}

		resp, err = c.breaker.Execute(func() (Response, error) {
			return c.post(ctx, pathSubscriptionConfirmation, body)
		})
		if err == nil || attempt >= c.cfg.MaxRetries || !retryable(err) {
			break
		}
	}
	if err != nil {
		return c.fail(ctx, p, err, start)
	}

	if !resp.Success {
		c.record(OutcomeRejected)
		c.log.WarnContext(ctx, "subscription confirmation rejected",
			logger.UserID(p.UserID),
			slog.String("message", resp.Message),
			logger.Duration(time.Since(start)),
		)
		return false, fmt.Errorf("%w: %s", ErrRejected, resp.Message)
	}

	c.record(OutcomeSent)
	c.log.InfoContext(ctx, "subscription confirmation sent",
		logger.UserID(p.UserID),
		logger.Duration(time.Since(start)),
	)
	return true, nil
}

func (c *Client) fail(ctx context.Context, p SubscriptionConfirmation, err error, start time.Time) (bool, error) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.record(OutcomeCircuitOpen)
		err = errors.Join(ErrCircuitOpen, err)
	} else {
		c.record(OutcomeFailed)
	}
	c.log.ErrorContext(ctx, "subscription confirmation failed",
		logger.UserID(p.UserID),
		logger.Duration(time.Since(start)),
		logger.Error(err),
	)
	return false, err
}

func (c *Client) post(ctx context.Context, path string, body []byte) (Response, error) {
	reqCtx, cancel := withTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return Response{}, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, c.cfg.APIKey)
	requestid.Propagate(ctx, req.Header)

	res, err := c.http.Do(req)
	if err != nil {
		return Response{}, errors.Join(ErrRequestFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
		return Response{}, &StatusError{Code: res.StatusCode}
	}

	var out Response
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return Response{}, errors.Join(ErrInvalidResponse, err)
	}
	return out, nil
}

// CheckHealth reports whether the notification service answers status "healthy".
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := withTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()
	reqCtx, reqCancel := withTimeout(ctx, c.cfg.HealthRequestTimeout)
	defer reqCancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.cfg.BaseURL+pathHealth, nil)
	if err != nil {
		return false
	}
	req.Header.Set(headerAPIKey, c.cfg.APIKey)

	res, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "notification service health check failed", logger.Error(err))
		return false
	}
	defer res.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(res.Body, 64<<10)).Decode(&body); err != nil {
		return false
	}
	return res.StatusCode == http.StatusOK && body.Status == "healthy"
}

// Ping adapts CheckHealth to the readiness probe signature.
func (c *Client) Ping(ctx context.Context) error {
	if !c.CheckHealth(ctx) {
		return ErrRequestFailed
	}
	return nil
}

func (c *Client) record(outcome string) {
	if c.observer != nil {
		c.observer.NotificationResult(KindSubscriptionConfirmation, outcome)
	}
}

// retryable is true for transport failures and 5xx answers.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return errors.Is(err, ErrRequestFailed) && !errors.Is(err, context.Canceled)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
