package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/zone/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]*domain.Zone, error) {
	var zones []*domain.Zone
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, descripcion, codigo, tarifa_basica, tarifa_exceso, estado, created_at, updated_at
		 FROM zonas
		 WHERE estado = ?
		 ORDER BY nombre`,
		true,
	).Scan(&zones).Error
	if err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *repo) FindActiveByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Zone, error) {
	var zone domain.Zone
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, descripcion, codigo, tarifa_basica, tarifa_exceso, estado, created_at, updated_at
		 FROM zonas
		 WHERE id = ? AND estado = ?`,
		id,
		true,
	).Scan(&zone).Error
	if err != nil {
		return nil, err
	}
	if zone.ID == 0 {
		return nil, nil
	}
	return &zone, nil
}
