package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingFields      = errors.New("payment: missing required fields")
	ErrInvoiceNotFound    = errors.New("payment: invoice not found")
	ErrInvoiceAlreadyPaid = errors.New("payment: invoice already paid")
)

// RegisterPaymentRequest carries the fields accepted when recording a
// payment. InvoiceID arrives as a string because snowflake IDs travel
// as JSON strings on the wire.
type RegisterPaymentRequest struct {
	InvoiceID string
	PaidAt    time.Time
	Amount    decimal.Decimal
	Method    string
	Notes     string
}

type Service interface {
	Register(context.Context, RegisterPaymentRequest) (Payment, error)
	List(context.Context) ([]Row, error)
}
