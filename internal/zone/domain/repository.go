package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListActive(ctx context.Context, db *gorm.DB) ([]*Zone, error)
	FindActiveByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Zone, error)
}
