package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest carries the caller-supplied invoice fields.
// Subtotal and total are recomputed server-side; the status and issue
// date are always forced.
type CreateInvoiceRequest struct {
	CustomerID    string
	ReadingID     string
	Number        string
	DueAt         time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
	Consumption   decimal.Decimal
	BaseTariff    decimal.Decimal
	ExcessTariff  decimal.Decimal
	Discounts     decimal.Decimal
	Surcharges    decimal.Decimal
	Taxes         decimal.Decimal
	PaymentMethod string
	Notes         string
}

type GetInvoiceRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	List(context.Context) ([]Summary, error)
	GetByID(context.Context, GetInvoiceRequest) (Detail, error)
	ListByCustomer(context.Context, string) ([]CustomerSummary, error)
	MarkPaid(context.Context, string) (Invoice, error)
}

var (
	ErrInvalidID       = errors.New("invalid_invoice_id")
	ErrMissingFields   = errors.New("invoice_missing_fields")
	ErrDuplicateNumber = errors.New("duplicate_invoice_number")
	ErrNotFound        = errors.New("invoice_not_found")
	ErrAlreadyPaid     = errors.New("invoice_already_paid")
)
