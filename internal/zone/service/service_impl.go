package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/zone/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("zone.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Zone, error) {
	items, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}

	zones := make([]domain.Zone, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		zones = append(zones, *item)
	}
	return zones, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetZoneRequest) (domain.Zone, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Zone{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindActiveByID(ctx, s.db, id)
	if err != nil {
		return domain.Zone{}, err
	}
	if item == nil {
		return domain.Zone{}, domain.ErrNotFound
	}
	return *item, nil
}
