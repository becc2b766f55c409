package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindDetailByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Detail, error) {
	var detail domain.Detail
	err := db.WithContext(ctx).Raw(
		`SELECT f.*, c.nombre || ' ' || c.apellido AS cliente_nombre
		 FROM facturas f
		 LEFT JOIN clientes c ON f.cliente_id = c.id
		 WHERE f.id = ?`,
		id,
	).Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, nil
	}
	return &detail, nil
}

func (r *repo) ListSummaries(ctx context.Context, db *gorm.DB) ([]*domain.Summary, error) {
	var rows []*domain.Summary
	err := db.WithContext(ctx).Raw(
		`SELECT
		   f.id, f.numero_factura, f.cliente_id,
		   c.nombre || ' ' || c.apellido AS cliente_nombre,
		   f.fecha_emision, f.fecha_vencimiento, f.consumo_m3,
		   f.subtotal, f.total, f.estado_factura
		 FROM facturas f
		 LEFT JOIN clientes c ON f.cliente_id = c.id
		 ORDER BY f.fecha_emision DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*domain.CustomerSummary, error) {
	var rows []*domain.CustomerSummary
	err := db.WithContext(ctx).Raw(
		`SELECT
		   f.id, f.numero_factura, f.fecha_emision,
		   f.periodo_facturado_inicio, f.periodo_facturado_fin,
		   f.consumo_m3, f.total, f.estado_factura
		 FROM facturas f
		 WHERE f.cliente_id = ?
		 ORDER BY f.fecha_emision DESC`,
		customerID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) MarkOverdue(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE facturas
		 SET estado_factura = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE estado_factura = ? AND fecha_vencimiento < ?`,
		domain.StatusOverdue,
		domain.StatusPending,
		today,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paidAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE facturas
		 SET estado_factura = ?, fecha_pago = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		domain.StatusPaid,
		paidAt,
		id,
	).Error
}
