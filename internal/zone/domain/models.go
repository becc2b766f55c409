// Package domain contains persistence models for service zones.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Zone is a geographic service area with its own water tariff rates.
type Zone struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"column:nombre;type:text;not null" json:"nombre"`
	Description  string          `gorm:"column:descripcion;type:text" json:"descripcion"`
	Code         string          `gorm:"column:codigo;type:text;not null" json:"codigo"`
	BaseTariff   decimal.Decimal `gorm:"column:tarifa_basica;type:numeric(12,2);not null" json:"tarifa_basica"`
	ExcessTariff decimal.Decimal `gorm:"column:tarifa_exceso;type:numeric(12,2);not null" json:"tarifa_exceso"`
	Active       bool            `gorm:"column:estado;not null;default:true" json:"estado"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Zone) TableName() string { return "zonas" }
