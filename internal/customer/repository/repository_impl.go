package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const customerColumns = `
	c.id, c.nombre, c.apellido, c.dni_o_cuit, c.email, c.telefono,
	c.direccion, c.ciudad, c.codigo_postal, c.zona_id, c.estado,
	c.fecha_registro, c.fecha_modificacion`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clientes (id, nombre, apellido, dni_o_cuit, email, telefono,
		  direccion, ciudad, codigo_postal, zona_id, estado, fecha_registro, fecha_modificacion)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.TaxID,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.ZoneID,
		customer.Active,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clientes SET
		   nombre = ?, apellido = ?, dni_o_cuit = ?, email = ?, telefono = ?,
		   direccion = ?, ciudad = ?, codigo_postal = ?, zona_id = ?, fecha_modificacion = ?
		 WHERE id = ? AND estado = ?`,
		customer.FirstName,
		customer.LastName,
		customer.TaxID,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.ZoneID,
		customer.UpdatedAt,
		customer.ID,
		true,
	).Error
}

func (r *repo) FindActiveByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Row, error) {
	var row domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT `+customerColumns+`, z.nombre AS zona_nombre
		 FROM clientes c
		 LEFT JOIN zonas z ON c.zona_id = z.id
		 WHERE c.id = ? AND c.estado = ?`,
		id,
		true,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, apellido, dni_o_cuit, email, telefono, direccion,
		   ciudad, codigo_postal, zona_id, estado, fecha_registro, fecha_modificacion
		 FROM clientes WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]*domain.Row, error) {
	var rows []*domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT `+customerColumns+`, z.nombre AS zona_nombre
		 FROM clientes c
		 LEFT JOIN zonas z ON c.zona_id = z.id
		 WHERE c.estado = ?
		 ORDER BY c.fecha_registro DESC`,
		true,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]*domain.AuditRow, error) {
	var rows []*domain.AuditRow
	err := db.WithContext(ctx).Raw(
		`SELECT `+customerColumns+`, z.nombre AS zona_nombre,
		   CASE WHEN c.estado = ? THEN 'Activo' ELSE 'Eliminado' END AS estado_texto
		 FROM clientes c
		 LEFT JOIN zonas z ON c.zona_id = z.id
		 ORDER BY c.fecha_registro DESC`,
		true,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ActiveTaxIDExists(ctx context.Context, db *gorm.DB, taxID string, excludeID snowflake.ID) (bool, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("dni_o_cuit = ? AND estado = ?", taxID, true)
	if excludeID != 0 {
		stmt = stmt.Where("id != ?", excludeID)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE clientes SET estado = ?, fecha_modificacion = CURRENT_TIMESTAMP WHERE id = ?`,
		active,
		id,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM clientes WHERE id = ?`, id).Error
}

func (r *repo) ListInactiveRefs(ctx context.Context, db *gorm.DB) ([]domain.Ref, error) {
	var refs []domain.Ref
	err := db.WithContext(ctx).Raw(
		`SELECT id, nombre, apellido FROM clientes WHERE estado = ?`,
		false,
	).Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (r *repo) DeleteInactive(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).Exec(`DELETE FROM clientes WHERE estado = ?`, false)
	return result.RowsAffected, result.Error
}
