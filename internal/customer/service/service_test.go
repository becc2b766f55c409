package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/coopaguas/facturador/internal/customer/domain"
	customerrepo "github.com/coopaguas/facturador/internal/customer/repository"
	customerservice "github.com/coopaguas/facturador/internal/customer/service"
	zonerepo "github.com/coopaguas/facturador/internal/zone/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared&_foreign_keys=1", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE zonas (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			descripcion TEXT NOT NULL DEFAULT '',
			codigo TEXT NOT NULL,
			tarifa_basica NUMERIC NOT NULL DEFAULT 0,
			tarifa_exceso NUMERIC NOT NULL DEFAULT 0,
			estado BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE clientes (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			apellido TEXT NOT NULL,
			dni_o_cuit TEXT NOT NULL,
			email TEXT,
			telefono TEXT,
			direccion TEXT NOT NULL,
			ciudad TEXT NOT NULL DEFAULT 'No especificada',
			codigo_postal TEXT,
			zona_id BIGINT REFERENCES zonas (id),
			estado BOOLEAN NOT NULL DEFAULT TRUE,
			fecha_registro DATETIME NOT NULL,
			fecha_modificacion DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_clientes_dni_activo ON clientes (dni_o_cuit) WHERE estado = 1`,
		`CREATE TABLE facturas (
			id BIGINT PRIMARY KEY,
			numero_factura TEXT NOT NULL,
			cliente_id BIGINT NOT NULL REFERENCES clientes (id),
			fecha_emision DATE NOT NULL,
			fecha_vencimiento DATE NOT NULL,
			total NUMERIC NOT NULL DEFAULT 0,
			estado_factura TEXT NOT NULL DEFAULT 'Pendiente'
		)`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, db.Exec(`PRAGMA foreign_keys = ON`).Error)
	return db
}

func newService(t *testing.T, db *gorm.DB) customerdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	return customerservice.New(customerservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     customerrepo.Provide(),
		ZoneRepo: zonerepo.Provide(),
	})
}

func seedZone(t *testing.T, db *gorm.DB, active bool) snowflake.ID {
	t.Helper()

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	id := node.Generate()
	require.NoError(t, db.Exec(
		`INSERT INTO zonas (id, nombre, descripcion, codigo, tarifa_basica, tarifa_exceso, estado, created_at, updated_at)
		 VALUES (?, ?, '', ?, ?, ?, ?, ?, ?)`,
		id,
		"Centro",
		fmt.Sprintf("ZC-%d", time.Now().UnixNano()),
		decimal.RequireFromString("1500.00"),
		decimal.RequireFromString("180.00"),
		active,
		time.Now().UTC(),
		time.Now().UTC(),
	).Error)
	return id
}

func validRequest() customerdomain.UpsertCustomerRequest {
	return customerdomain.UpsertCustomerRequest{
		FirstName: "Juan",
		LastName:  "Pérez",
		TaxID:     "20-12345678-9",
		Address:   "Av. San Martín 123",
	}
}

func TestCreateRequiresMandatoryFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	req := validRequest()
	req.Address = "  "

	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, customerdomain.ErrMissingFields)
}

func TestCreateDefaultsCity(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "No especificada", created.City)
	assert.True(t, created.Active)
}

func TestCreateRejectsUnknownZone(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	req := validRequest()
	req.ZoneID = "999999999999999999"

	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, customerdomain.ErrZoneNotFound)
}

func TestCreateRejectsInactiveZone(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(t, db)

	zoneID := seedZone(t, db, false)
	req := validRequest()
	req.ZoneID = zoneID.String()

	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, customerdomain.ErrZoneNotFound)
}

func TestCreateRejectsDuplicateActiveTaxID(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.FirstName = "Otra"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, customerdomain.ErrDuplicateTaxID)
}

func TestDeactivateFreesTaxIDForReuse(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID.String()))

	// The tax id belongs only to active customers, so a new
	// registration under the same DNI/CUIT must succeed.
	_, err = svc.Create(ctx, validRequest())
	assert.NoError(t, err)
}

func TestUpdateRejectsTaxIDTakenByAnotherActiveCustomer(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	first, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	other := validRequest()
	other.TaxID = "27-99999999-1"
	second, err := svc.Create(ctx, other)
	require.NoError(t, err)

	update := validRequest()
	update.TaxID = first.TaxID
	_, err = svc.Update(ctx, second.ID.String(), update)
	assert.ErrorIs(t, err, customerdomain.ErrDuplicateTaxID)
}

func TestDeactivateAndRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID.String()))

	rows, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, svc.Restore(ctx, created.ID.String()))

	rows, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRestoreRejectsActiveCustomer(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	err = svc.Restore(ctx, created.ID.String())
	assert.ErrorIs(t, err, customerdomain.ErrNotInactive)
}

func TestHardDeleteBlockedByInvoices(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(t, db)

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, db.Exec(
		`INSERT INTO facturas (id, numero_factura, cliente_id, fecha_emision, fecha_vencimiento)
		 VALUES (1, 'F-0001-00000001', ?, '2026-01-01', '2026-01-15')`,
		created.ID,
	).Error)

	err = svc.HardDelete(ctx, created.ID.String())
	assert.ErrorIs(t, err, customerdomain.ErrHasRelatedRows)
}

func TestHardDeleteRemovesRow(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.HardDelete(ctx, created.ID.String()))

	_, err = svc.GetByID(ctx, customerdomain.GetCustomerRequest{ID: created.ID.String()})
	assert.ErrorIs(t, err, customerdomain.ErrNotFound)
}

func TestCleanupPurgesOnlyInactive(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	kept, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	gone := validRequest()
	gone.TaxID = "27-88888888-2"
	goneCustomer, err := svc.Create(ctx, gone)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, goneCustomer.ID.String()))

	result, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Removed)
	require.Len(t, result.Customers, 1)
	assert.Equal(t, goneCustomer.ID, result.Customers[0].ID)

	rows, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, kept.ID, rows[0].ID)
}

func TestCleanupWithNothingToRemove(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, setupTestDB(t))

	result, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Removed)
	assert.Empty(t, result.Customers)
}
