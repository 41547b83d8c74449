package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
	StatusRefunded  Status = "refunded"
)

var Statuses = []Status{StatusPending, StatusSucceeded, StatusFailed, StatusCanceled, StatusRefunded}

type Method string

const (
	MethodCard      Method = "card"
	MethodSEPADebit Method = "sepa_debit"
	MethodPayPal    Method = "paypal"
)

var Methods = []Method{MethodCard, MethodSEPADebit, MethodPayPal}

const DefaultCurrency = "eur"

// Payment is one charge. Amounts are in minor units.
type Payment struct {
	ID                    bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID                string         `bson:"userId" json:"userId"`
	SubscriptionID        string         `bson:"subscriptionId" json:"subscriptionId"`
	StripePaymentIntentID string         `bson:"stripePaymentIntentId" json:"stripePaymentIntentId"`
	StripeChargeID        string         `bson:"stripeChargeId,omitempty" json:"stripeChargeId,omitempty"`
	Status                Status         `bson:"status" json:"status"`
	PaymentMethod         Method         `bson:"paymentMethod" json:"paymentMethod"`
	Amount                int64          `bson:"amount" json:"amount"`
	Currency              string         `bson:"currency" json:"currency"`
	Description           string         `bson:"description,omitempty" json:"description,omitempty"`
	PaidAt                *time.Time     `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	FailureReason         string         `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	RefundedAmount        int64          `bson:"refundedAmount" json:"refundedAmount"`
	RefundedAt            *time.Time     `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`
	ReceiptURL            string         `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`
	InvoiceID             string         `bson:"invoiceId,omitempty" json:"invoiceId,omitempty"`
	BillingPeriodStart    *time.Time     `bson:"billingPeriodStart,omitempty" json:"billingPeriodStart,omitempty"`
	BillingPeriodEnd      *time.Time     `bson:"billingPeriodEnd,omitempty" json:"billingPeriodEnd,omitempty"`
	IsTrial               bool           `bson:"isTrial" json:"isTrial"`
	Metadata              map[string]any `bson:"metadata" json:"metadata"`
	CreatedAt             time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time      `bson:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	UserID                string         `json:"userId"`
	SubscriptionID        string         `json:"subscriptionId"`
	StripePaymentIntentID string         `json:"stripePaymentIntentId"`
	StripeChargeID        string         `json:"stripeChargeId,omitempty"`
	Status                *Status        `json:"status,omitempty"`
	PaymentMethod         Method         `json:"paymentMethod"`
	Amount                *int64         `json:"amount"`
	Currency              *string        `json:"currency,omitempty"`
	Description           string         `json:"description,omitempty"`
	PaidAt                *time.Time     `json:"paidAt,omitempty"`
	FailureReason         string         `json:"failureReason,omitempty"`
	RefundedAmount        *int64         `json:"refundedAmount,omitempty"`
	RefundedAt            *time.Time     `json:"refundedAt,omitempty"`
	ReceiptURL            string         `json:"receiptUrl,omitempty"`
	InvoiceID             string         `json:"invoiceId,omitempty"`
	BillingPeriodStart    *time.Time     `json:"billingPeriodStart,omitempty"`
	BillingPeriodEnd      *time.Time     `json:"billingPeriodEnd,omitempty"`
	IsTrial               bool           `json:"isTrial,omitempty"`
	Metadata              map[string]any `json:"metadata,omitempty"`
}

// Build applies the defaults and returns the record to insert.
func (in CreateInput) Build(now time.Time) Payment {
	p := Payment{
		UserID:                in.UserID,
		SubscriptionID:        in.SubscriptionID,
		StripePaymentIntentID: in.StripePaymentIntentID,
		StripeChargeID:        in.StripeChargeID,
		Status:                StatusPending,
		PaymentMethod:         in.PaymentMethod,
		Currency:              DefaultCurrency,
		Description:           in.Description,
		PaidAt:                in.PaidAt,
		FailureReason:         in.FailureReason,
		RefundedAt:            in.RefundedAt,
		ReceiptURL:            in.ReceiptURL,
		InvoiceID:             in.InvoiceID,
		BillingPeriodStart:    in.BillingPeriodStart,
		BillingPeriodEnd:      in.BillingPeriodEnd,
		IsTrial:               in.IsTrial,
		Metadata:              in.Metadata,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
	if in.RefundedAmount != nil {
		p.RefundedAmount = *in.RefundedAmount
	}
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	return p
}

// Patch is a partial update. Only non-nil fields are written.
type Patch struct {
	StripeChargeID     *string        `json:"stripeChargeId,omitempty" bson:"stripeChargeId,omitempty"`
	Status             *Status        `json:"status,omitempty" bson:"status,omitempty"`
	PaymentMethod      *Method        `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	Amount             *int64         `json:"amount,omitempty" bson:"amount,omitempty"`
	Currency           *string        `json:"currency,omitempty" bson:"currency,omitempty"`
	Description        *string        `json:"description,omitempty" bson:"description,omitempty"`
	PaidAt             *time.Time     `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	FailureReason      *string        `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	RefundedAmount     *int64         `json:"refundedAmount,omitempty" bson:"refundedAmount,omitempty"`
	RefundedAt         *time.Time     `json:"refundedAt,omitempty" bson:"refundedAt,omitempty"`
	ReceiptURL         *string        `json:"receiptUrl,omitempty" bson:"receiptUrl,omitempty"`
	InvoiceID          *string        `json:"invoiceId,omitempty" bson:"invoiceId,omitempty"`
	BillingPeriodStart *time.Time     `json:"billingPeriodStart,omitempty" bson:"billingPeriodStart,omitempty"`
	BillingPeriodEnd   *time.Time     `json:"billingPeriodEnd,omitempty" bson:"billingPeriodEnd,omitempty"`
	IsTrial            *bool          `json:"isTrial,omitempty" bson:"isTrial,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
