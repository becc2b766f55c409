package repository

import (
	"context"

	"github.com/coopaguas/facturador/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Row, error) {
	var rows []*domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT
		   p.id, p.factura_id, f.numero_factura, f.cliente_id,
		   p.fecha_pago, p.monto_pagado, p.metodo_pago, p.observaciones
		 FROM pagos p
		 LEFT JOIN facturas f ON p.factura_id = f.id
		 ORDER BY p.fecha_pago DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
