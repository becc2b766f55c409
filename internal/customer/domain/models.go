// Package domain contains persistence models for customers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is an account holder identified by DNI/CUIT, unique among
// active rows. Inactive rows are soft-deleted and can be restored.
type Customer struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	FirstName  string        `gorm:"column:nombre;type:text;not null" json:"nombre"`
	LastName   string        `gorm:"column:apellido;type:text;not null" json:"apellido"`
	TaxID      string        `gorm:"column:dni_o_cuit;type:text;not null" json:"dni_o_cuit"`
	Email      *string       `gorm:"column:email;type:text" json:"email"`
	Phone      *string       `gorm:"column:telefono;type:text" json:"telefono"`
	Address    string        `gorm:"column:direccion;type:text;not null" json:"direccion"`
	City       string        `gorm:"column:ciudad;type:text;not null;default:'No especificada'" json:"ciudad"`
	PostalCode *string       `gorm:"column:codigo_postal;type:text" json:"codigo_postal"`
	ZoneID     *snowflake.ID `gorm:"column:zona_id;index" json:"zona_id"`
	Active     bool          `gorm:"column:estado;not null;default:true" json:"estado"`
	CreatedAt  time.Time     `gorm:"column:fecha_registro;not null;default:CURRENT_TIMESTAMP" json:"fecha_registro"`
	UpdatedAt  time.Time     `gorm:"column:fecha_modificacion;not null;default:CURRENT_TIMESTAMP" json:"fecha_modificacion"`
}

func (Customer) TableName() string { return "clientes" }

// Row is a customer joined with its zone name for listings.
type Row struct {
	Customer
	ZoneName *string `gorm:"column:zona_nombre" json:"zona_nombre"`
}

// AuditRow carries the state label the admin listing shows next to
// soft-deleted customers.
type AuditRow struct {
	Row
	StateLabel string `gorm:"column:estado_texto" json:"estado_texto"`
}

// Ref identifies a purged customer in the cleanup response.
type Ref struct {
	ID        snowflake.ID `gorm:"column:id" json:"id"`
	FirstName string       `gorm:"column:nombre" json:"nombre"`
	LastName  string       `gorm:"column:apellido" json:"apellido"`
}
