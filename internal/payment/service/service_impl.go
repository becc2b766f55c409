package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/clock"
	invoicedomain "github.com/coopaguas/facturador/internal/invoice/domain"
	"github.com/coopaguas/facturador/internal/observability/metrics"
	"github.com/coopaguas/facturador/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Invoices invoicedomain.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	invoices invoicedomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		invoices: p.Invoices,
		metrics:  p.Metrics,
	}
}

// Register records a payment and, when the single amount covers the
// invoice total, flips the invoice to paid in the same transaction.
// Amounts never accumulate across payments: a partial payment leaves
// the invoice status untouched regardless of earlier payments.
func (s *Service) Register(ctx context.Context, req domain.RegisterPaymentRequest) (domain.Payment, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil || invoiceID == 0 {
		return domain.Payment{}, domain.ErrMissingFields
	}
	if req.Amount.IsZero() || req.Amount.IsNegative() {
		return domain.Payment{}, domain.ErrMissingFields
	}

	now := s.clock.Now()
	paidAt := dateOf(req.PaidAt)
	if req.PaidAt.IsZero() {
		paidAt = dateOf(now)
	}

	payment := domain.Payment{
		ID:        s.genID.Generate(),
		InvoiceID: invoiceID,
		PaidAt:    paidAt,
		Amount:    req.Amount.Round(2),
		Method:    optional(req.Method),
		Notes:     optional(req.Notes),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	settled := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoices.FindByID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrInvoiceNotFound
		}
		if invoice.Status == invoicedomain.StatusPaid {
			return domain.ErrInvoiceAlreadyPaid
		}

		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}

		if payment.Amount.GreaterThanOrEqual(invoice.Total) {
			if err := s.invoices.MarkPaid(ctx, tx, invoiceID, paidAt); err != nil {
				return err
			}
			settled = true
		}
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}

	s.metrics.RecordPayment()
	if settled {
		s.metrics.RecordSettled("payment")
	}
	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("factura_id", invoiceID.String()),
		zap.String("monto", payment.Amount.String()),
		zap.Bool("settled", settled),
	)
	return payment, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Row, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		rows = append(rows, *item)
	}
	return rows, nil
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
