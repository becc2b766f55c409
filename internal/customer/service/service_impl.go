package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/customer/domain"
	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	"github.com/coopaguas/facturador/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	ZoneRepo zonedomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	zoneRepo zonedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("customer.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		zoneRepo: p.ZoneRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.UpsertCustomerRequest) (domain.Customer, error) {
	fields, err := s.normalize(req)
	if err != nil {
		return domain.Customer{}, err
	}

	exists, err := s.repo.ActiveTaxIDExists(ctx, s.db, fields.TaxID, 0)
	if err != nil {
		return domain.Customer{}, err
	}
	if exists {
		return domain.Customer{}, domain.ErrDuplicateTaxID
	}

	if err := s.checkZone(ctx, fields.ZoneID); err != nil {
		return domain.Customer{}, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:         s.genID.Generate(),
		FirstName:  fields.FirstName,
		LastName:   fields.LastName,
		TaxID:      fields.TaxID,
		Email:      fields.Email,
		Phone:      fields.Phone,
		Address:    fields.Address,
		City:       fields.City,
		PostalCode: fields.PostalCode,
		ZoneID:     fields.ZoneID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateTaxID
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req domain.UpsertCustomerRequest) (domain.Customer, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Customer{}, err
	}

	existing, err := s.repo.FindActiveByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	fields, err := s.normalize(req)
	if err != nil {
		return domain.Customer{}, err
	}

	duplicated, err := s.repo.ActiveTaxIDExists(ctx, s.db, fields.TaxID, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if duplicated {
		return domain.Customer{}, domain.ErrDuplicateTaxID
	}

	if err := s.checkZone(ctx, fields.ZoneID); err != nil {
		return domain.Customer{}, err
	}

	customer := existing.Customer
	customer.FirstName = fields.FirstName
	customer.LastName = fields.LastName
	customer.TaxID = fields.TaxID
	customer.Email = fields.Email
	customer.Phone = fields.Phone
	customer.Address = fields.Address
	customer.City = fields.City
	customer.PostalCode = fields.PostalCode
	customer.ZoneID = fields.ZoneID
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateTaxID
		}
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Row, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Row{}, err
	}

	row, err := s.repo.FindActiveByID(ctx, s.db, id)
	if err != nil {
		return domain.Row{}, err
	}
	if row == nil {
		return domain.Row{}, domain.ErrNotFound
	}
	return *row, nil
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Row, error) {
	items, err := s.repo.ListActive(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return derefRows(items), nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.AuditRow, error) {
	items, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.AuditRow, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, *item)
	}
	return rows, nil
}

func (s *Service) Deactivate(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindActiveByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	return s.repo.SetActive(ctx, s.db, id, false)
}

func (s *Service) Restore(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	// Only inactive customers can be restored; an already active row
	// reports not found, matching the admin UI contract.
	if existing == nil || existing.Active {
		return domain.ErrNotInactive
	}

	return s.repo.SetActive(ctx, s.db, id, true)
}

func (s *Service) HardDelete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindActiveByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrHasRelatedRows
		}
		return err
	}

	s.log.Info("customer deleted",
		zap.String("customer_id", id.String()),
	)
	return nil
}

func (s *Service) Cleanup(ctx context.Context) (domain.CleanupResult, error) {
	var result domain.CleanupResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := s.repo.ListInactiveRefs(ctx, tx)
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			return nil
		}

		removed, err := s.repo.DeleteInactive(ctx, tx)
		if err != nil {
			return err
		}

		result.Removed = removed
		result.Customers = refs
		return nil
	})
	if err != nil {
		return domain.CleanupResult{}, err
	}

	if result.Removed > 0 {
		s.log.Info("inactive customers purged", zap.Int64("removed", result.Removed))
	}
	return result, nil
}

type normalized struct {
	FirstName  string
	LastName   string
	TaxID      string
	Email      *string
	Phone      *string
	Address    string
	City       string
	PostalCode *string
	ZoneID     *snowflake.ID
}

func (s *Service) normalize(req domain.UpsertCustomerRequest) (normalized, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	taxID := strings.TrimSpace(req.TaxID)
	address := strings.TrimSpace(req.Address)
	if firstName == "" || lastName == "" || taxID == "" || address == "" {
		return normalized{}, domain.ErrMissingFields
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		city = "No especificada"
	}

	out := normalized{
		FirstName:  firstName,
		LastName:   lastName,
		TaxID:      taxID,
		Address:    address,
		City:       city,
		Email:      optional(req.Email),
		Phone:      optional(req.Phone),
		PostalCode: optional(req.PostalCode),
	}

	if zoneRaw := strings.TrimSpace(req.ZoneID); zoneRaw != "" {
		zoneID, err := snowflake.ParseString(zoneRaw)
		if err != nil || zoneID == 0 {
			return normalized{}, domain.ErrZoneNotFound
		}
		out.ZoneID = &zoneID
	}

	return out, nil
}

func (s *Service) checkZone(ctx context.Context, zoneID *snowflake.ID) error {
	if zoneID == nil {
		return nil
	}
	zone, err := s.zoneRepo.FindActiveByID(ctx, s.db, *zoneID)
	if err != nil {
		return err
	}
	if zone == nil {
		return domain.ErrZoneNotFound
	}
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefRows(items []*domain.Row) []domain.Row {
	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, *item)
	}
	return rows
}
