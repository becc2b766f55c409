// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status represents invoice lifecycle states. Values are the Spanish
// labels the frontend renders verbatim.
type Status string

const (
	StatusPending Status = "Pendiente"
	StatusPaid    Status = "Pagada"
	StatusOverdue Status = "Vencida"
)

// Invoice is a bill issued against a customer for a metering period.
type Invoice struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	Number        string            `gorm:"column:numero_factura;type:text;not null;uniqueIndex:ux_facturas_numero" json:"numero_factura"`
	CustomerID    snowflake.ID      `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	ReadingID     *snowflake.ID     `gorm:"column:lectura_id;index" json:"lectura_id"`
	IssuedAt      time.Time         `gorm:"column:fecha_emision;not null" json:"fecha_emision"`
	DueAt         time.Time         `gorm:"column:fecha_vencimiento;not null;index" json:"fecha_vencimiento"`
	PeriodStart   *time.Time        `gorm:"column:periodo_facturado_inicio" json:"periodo_facturado_inicio"`
	PeriodEnd     *time.Time        `gorm:"column:periodo_facturado_fin" json:"periodo_facturado_fin"`
	Consumption   decimal.Decimal   `gorm:"column:consumo_m3;type:numeric(10,2);not null" json:"consumo_m3"`
	BaseTariff    decimal.Decimal   `gorm:"column:tarifa_basica;type:numeric(12,2);not null" json:"tarifa_basica"`
	ExcessTariff  decimal.Decimal   `gorm:"column:tarifa_exceso;type:numeric(12,2);not null" json:"tarifa_exceso"`
	Subtotal      decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Discounts     decimal.Decimal   `gorm:"column:descuentos;type:numeric(12,2);not null" json:"descuentos"`
	Surcharges    decimal.Decimal   `gorm:"column:recargos;type:numeric(12,2);not null" json:"recargos"`
	Taxes         decimal.Decimal   `gorm:"column:impuestos;type:numeric(12,2);not null" json:"impuestos"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Status        Status            `gorm:"column:estado_factura;type:text;not null;default:'Pendiente'" json:"estado_factura"`
	PaymentMethod *string           `gorm:"column:metodo_pago;type:text" json:"metodo_pago"`
	PaidAt        *time.Time        `gorm:"column:fecha_pago" json:"fecha_pago"`
	Notes         *string           `gorm:"column:observaciones;type:text" json:"observaciones"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"-"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Invoice) TableName() string { return "facturas" }

// Summary is the listing row shape, joined with the customer name.
type Summary struct {
	ID           snowflake.ID    `gorm:"column:id" json:"id"`
	Number       string          `gorm:"column:numero_factura" json:"numero_factura"`
	CustomerID   snowflake.ID    `gorm:"column:cliente_id" json:"cliente_id"`
	CustomerName *string         `gorm:"column:cliente_nombre" json:"cliente_nombre"`
	IssuedAt     time.Time       `gorm:"column:fecha_emision" json:"fecha_emision"`
	DueAt        time.Time       `gorm:"column:fecha_vencimiento" json:"fecha_vencimiento"`
	Consumption  decimal.Decimal `gorm:"column:consumo_m3" json:"consumo_m3"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal" json:"subtotal"`
	Total        decimal.Decimal `gorm:"column:total" json:"total"`
	Status       Status          `gorm:"column:estado_factura" json:"estado_factura"`
}

// Detail is the single-invoice shape with the joined customer name.
type Detail struct {
	Invoice
	CustomerName *string `gorm:"column:cliente_nombre" json:"cliente_nombre"`
}

// CustomerSummary is the per-customer listing row.
type CustomerSummary struct {
	ID          snowflake.ID    `gorm:"column:id" json:"id"`
	Number      string          `gorm:"column:numero_factura" json:"numero_factura"`
	IssuedAt    time.Time       `gorm:"column:fecha_emision" json:"fecha_emision"`
	PeriodStart *time.Time      `gorm:"column:periodo_facturado_inicio" json:"periodo_facturado_inicio"`
	PeriodEnd   *time.Time      `gorm:"column:periodo_facturado_fin" json:"periodo_facturado_fin"`
	Consumption decimal.Decimal `gorm:"column:consumo_m3" json:"consumo_m3"`
	Total       decimal.Decimal `gorm:"column:total" json:"total"`
	Status      Status          `gorm:"column:estado_factura" json:"estado_factura"`
}
