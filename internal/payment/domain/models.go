// Package domain contains persistence models for payments.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment records money received against an invoice.
type Payment struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID      `gorm:"column:factura_id;not null;index" json:"factura_id"`
	PaidAt    time.Time         `gorm:"column:fecha_pago;not null" json:"fecha_pago"`
	Amount    decimal.Decimal   `gorm:"column:monto_pagado;type:numeric(12,2);not null" json:"monto_pagado"`
	Method    *string           `gorm:"column:metodo_pago;type:text" json:"metodo_pago"`
	Notes     *string           `gorm:"column:observaciones;type:text" json:"observaciones"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"-"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Payment) TableName() string { return "pagos" }

// Row is the listing shape, joined with the invoice it settles.
type Row struct {
	ID            snowflake.ID    `gorm:"column:id" json:"id"`
	InvoiceID     snowflake.ID    `gorm:"column:factura_id" json:"factura_id"`
	InvoiceNumber *string         `gorm:"column:numero_factura" json:"numero_factura"`
	CustomerID    *snowflake.ID   `gorm:"column:cliente_id" json:"cliente_id"`
	PaidAt        time.Time       `gorm:"column:fecha_pago" json:"fecha_pago"`
	Amount        decimal.Decimal `gorm:"column:monto_pagado" json:"monto_pagado"`
	Method        *string         `gorm:"column:metodo_pago" json:"metodo_pago"`
	Notes         *string         `gorm:"column:observaciones" json:"observaciones"`
}
