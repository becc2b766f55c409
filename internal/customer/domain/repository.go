package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindActiveByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Row, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]*Row, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]*AuditRow, error)
	ActiveTaxIDExists(ctx context.Context, db *gorm.DB, taxID string, excludeID snowflake.ID) (bool, error)
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListInactiveRefs(ctx context.Context, db *gorm.DB) ([]Ref, error)
	DeleteInactive(ctx context.Context, db *gorm.DB) (int64, error)
}
