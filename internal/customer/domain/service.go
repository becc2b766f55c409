package domain

import (
	"context"
	"errors"
)

// UpsertCustomerRequest carries the client-supplied fields for create and
// full update. Field names mirror the JSON the frontend sends.
type UpsertCustomerRequest struct {
	FirstName  string
	LastName   string
	TaxID      string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	ZoneID     string
}

type GetCustomerRequest struct {
	ID string
}

// CleanupResult reports the outcome of purging inactive customers.
type CleanupResult struct {
	Removed   int64
	Customers []Ref
}

type Service interface {
	Create(context.Context, UpsertCustomerRequest) (Customer, error)
	Update(context.Context, string, UpsertCustomerRequest) (Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Row, error)
	ListActive(context.Context) ([]Row, error)
	ListAll(context.Context) ([]AuditRow, error)
	Deactivate(context.Context, string) error
	Restore(context.Context, string) error
	HardDelete(context.Context, string) error
	Cleanup(context.Context) (CleanupResult, error)
}

var (
	ErrInvalidID      = errors.New("invalid_customer_id")
	ErrMissingFields  = errors.New("missing_required_fields")
	ErrDuplicateTaxID = errors.New("duplicate_tax_id")
	ErrZoneNotFound   = errors.New("customer_zone_not_found")
	ErrNotFound       = errors.New("customer_not_found")
	ErrNotInactive    = errors.New("customer_not_inactive")
	ErrHasRelatedRows = errors.New("customer_has_related_rows")
)
