package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindDetailByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Detail, error)
	ListSummaries(ctx context.Context, db *gorm.DB) ([]*Summary, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*CustomerSummary, error)
	// MarkOverdue flips every pending invoice whose due date precedes
	// today; returns the number of rows transitioned.
	MarkOverdue(ctx context.Context, db *gorm.DB, today time.Time) (int64, error)
	MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paidAt time.Time) error
}
