package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/clock"
	"github.com/coopaguas/facturador/internal/invoice/domain"
	"github.com/coopaguas/facturador/internal/observability/metrics"
	"github.com/coopaguas/facturador/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return domain.Invoice{}, domain.ErrMissingFields
	}

	number := strings.TrimSpace(req.Number)
	if number == "" || req.DueAt.IsZero() {
		return domain.Invoice{}, domain.ErrMissingFields
	}

	var readingID *snowflake.ID
	if raw := strings.TrimSpace(req.ReadingID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.Invoice{}, domain.ErrMissingFields
		}
		readingID = &id
	}

	// Totals are derived here rather than trusted from the caller.
	subtotal := domain.ComputeSubtotal(req.Consumption, req.BaseTariff, req.ExcessTariff)
	total := domain.ComputeTotal(subtotal, req.Discounts, req.Surcharges, req.Taxes)

	now := s.clock.Now()
	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		Number:        number,
		CustomerID:    customerID,
		ReadingID:     readingID,
		IssuedAt:      dateOf(now),
		DueAt:         dateOf(req.DueAt),
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		Consumption:   req.Consumption,
		BaseTariff:    req.BaseTariff,
		ExcessTariff:  req.ExcessTariff,
		Subtotal:      subtotal,
		Discounts:     req.Discounts,
		Surcharges:    req.Surcharges,
		Taxes:         req.Taxes,
		Total:         total,
		Status:        domain.StatusPending,
		PaymentMethod: optional(req.PaymentMethod),
		Notes:         optional(req.Notes),
		Metadata:      datatypes.JSONMap{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateNumber
		}
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoiceCreated()
	s.log.Info("invoice issued",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("numero_factura", invoice.Number),
		zap.String("total", invoice.Total.String()),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Summary, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	items, err := s.repo.ListSummaries(ctx, s.db)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Summary, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, *item)
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Detail, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Detail{}, err
	}

	detail, err := s.repo.FindDetailByID(ctx, s.db, id)
	if err != nil {
		return domain.Detail{}, err
	}
	if detail == nil {
		return domain.Detail{}, domain.ErrNotFound
	}
	return *detail, nil
}

func (s *Service) ListByCustomer(ctx context.Context, rawID string) ([]domain.CustomerSummary, error) {
	customerID, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	if err := s.sweep(ctx); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByCustomer(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.CustomerSummary, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, *item)
	}
	return rows, nil
}

func (s *Service) MarkPaid(ctx context.Context, rawID string) (domain.Invoice, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Invoice{}, err
	}

	var updated domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status == domain.StatusPaid {
			return domain.ErrAlreadyPaid
		}

		paidAt := dateOf(s.clock.Now())
		if err := s.repo.MarkPaid(ctx, tx, id, paidAt); err != nil {
			return err
		}

		updated = *invoice
		updated.Status = domain.StatusPaid
		updated.PaidAt = &paidAt
		return nil
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordSettled("manual")
	s.log.Info("invoice marked paid",
		zap.String("invoice_id", id.String()),
	)
	return updated, nil
}

// sweep transitions stale pending invoices to overdue. The statement is
// a single predicate-scoped bulk update, so repeated runs are harmless.
func (s *Service) sweep(ctx context.Context) error {
	today := dateOf(s.clock.Now())
	flipped, err := s.repo.MarkOverdue(ctx, s.db, today)
	if err != nil {
		return err
	}
	if flipped > 0 {
		s.metrics.RecordOverdue(flipped)
		s.log.Info("overdue sweep", zap.Int64("invoices", flipped))
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

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
