package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	List(ctx context.Context, db *gorm.DB) ([]*Row, error)
}
