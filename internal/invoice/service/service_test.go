package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/clock"
	invoicedomain "github.com/coopaguas/facturador/internal/invoice/domain"
	invoicerepo "github.com/coopaguas/facturador/internal/invoice/repository"
	invoiceservice "github.com/coopaguas/facturador/internal/invoice/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE clientes (
			id BIGINT PRIMARY KEY,
			nombre TEXT NOT NULL,
			apellido TEXT NOT NULL,
			dni_o_cuit TEXT NOT NULL,
			direccion TEXT NOT NULL,
			ciudad TEXT NOT NULL DEFAULT 'No especificada',
			estado BOOLEAN NOT NULL DEFAULT TRUE,
			fecha_registro DATETIME NOT NULL,
			fecha_modificacion DATETIME NOT NULL
		)`,
		`CREATE TABLE facturas (
			id BIGINT PRIMARY KEY,
			numero_factura TEXT NOT NULL,
			cliente_id BIGINT NOT NULL,
			lectura_id BIGINT,
			fecha_emision DATE NOT NULL,
			fecha_vencimiento DATE NOT NULL,
			periodo_facturado_inicio DATE,
			periodo_facturado_fin DATE,
			consumo_m3 NUMERIC NOT NULL DEFAULT 0,
			tarifa_basica NUMERIC NOT NULL DEFAULT 0,
			tarifa_exceso NUMERIC NOT NULL DEFAULT 0,
			subtotal NUMERIC NOT NULL DEFAULT 0,
			descuentos NUMERIC NOT NULL DEFAULT 0,
			recargos NUMERIC NOT NULL DEFAULT 0,
			impuestos NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL DEFAULT 0,
			estado_factura TEXT NOT NULL DEFAULT 'Pendiente',
			metodo_pago TEXT,
			fecha_pago DATE,
			observaciones TEXT,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX ux_facturas_numero ON facturas (numero_factura)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func newService(t *testing.T, db *gorm.DB, clk clock.Clock) invoicedomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(4)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	return invoiceservice.New(invoiceservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  invoicerepo.Provide(),
	})
}

func seedCustomer(t *testing.T, db *gorm.DB) snowflake.ID {
	t.Helper()

	node, err := snowflake.NewNode(5)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	id := node.Generate()
	err = db.Exec(
		`INSERT INTO clientes (id, nombre, apellido, dni_o_cuit, direccion, fecha_registro, fecha_modificacion)
		 VALUES (?, 'Juan', 'Pérez', '20-12345678-9', 'Av. San Martín 123', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		id,
	).Error
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return id
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createRequest(customerID snowflake.ID, number string, dueAt time.Time) invoicedomain.CreateInvoiceRequest {
	return invoicedomain.CreateInvoiceRequest{
		CustomerID:   customerID.String(),
		Number:       number,
		DueAt:        dueAt,
		Consumption:  dec("15"),
		BaseTariff:   dec("1500.00"),
		ExcessTariff: dec("180.00"),
		Discounts:    dec("0"),
		Surcharges:   dec("0"),
		Taxes:        dec("0"),
	}
}

func TestCreateForcesPendingStatusAndIssueDate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	due := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)

	invoice, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000001", due))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if invoice.Status != invoicedomain.StatusPending {
		t.Fatalf("status = %s, want Pendiente", invoice.Status)
	}
	wantIssued := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !invoice.IssuedAt.Equal(wantIssued) {
		t.Fatalf("issued = %s, want %s", invoice.IssuedAt, wantIssued)
	}
}

func TestCreateRecomputesTotalsServerSide(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	req := createRequest(customerID, "F-0001-00000002", time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC))
	req.Discounts = dec("100.00")
	req.Surcharges = dec("50.00")
	req.Taxes = dec("210.00")

	invoice, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 1500 base + 5 m3 excess * 180 = 2400; 2400 - 100 + 50 + 210 = 2560.
	if !invoice.Subtotal.Equal(dec("2400.00")) {
		t.Fatalf("subtotal = %s, want 2400.00", invoice.Subtotal)
	}
	if !invoice.Total.Equal(dec("2560.00")) {
		t.Fatalf("total = %s, want 2560.00", invoice.Total)
	}
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	due := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000003", due)); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000003", due))
	if err != invoicedomain.ErrDuplicateNumber {
		t.Fatalf("err = %v, want ErrDuplicateNumber", err)
	}
}

func TestListSweepsOverdueInvoices(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000004", due)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Still pending while the due date has not passed.
	rows, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows[0].Status != invoicedomain.StatusPending {
		t.Fatalf("status = %s, want Pendiente", rows[0].Status)
	}

	clk.Advance(6 * 24 * time.Hour)

	rows, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows[0].Status != invoicedomain.StatusOverdue {
		t.Fatalf("status = %s, want Vencida", rows[0].Status)
	}

	// A second sweep is a no-op.
	rows, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows[0].Status != invoicedomain.StatusOverdue {
		t.Fatalf("status = %s, want Vencida after second sweep", rows[0].Status)
	}
}

func TestSweepNeverRevertsPaidInvoices(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	invoice, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000005", due))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.MarkPaid(ctx, invoice.ID.String()); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	clk.Advance(30 * 24 * time.Hour)

	rows, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows[0].Status != invoicedomain.StatusPaid {
		t.Fatalf("status = %s, want Pagada", rows[0].Status)
	}
}

func TestMarkPaidRejectsAlreadyPaid(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	due := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)

	invoice, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000006", due))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.MarkPaid(ctx, invoice.ID.String()); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	_, err = svc.MarkPaid(ctx, invoice.ID.String())
	if err != invoicedomain.ErrAlreadyPaid {
		t.Fatalf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestMarkPaidUnknownInvoice(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	_, err := svc.MarkPaid(ctx, "123456789012345678")
	if err != invoicedomain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetByIDJoinsCustomerName(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	clk := clock.NewFakeClock(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	svc := newService(t, db, clk)

	customerID := seedCustomer(t, db)
	due := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)

	invoice, err := svc.Create(ctx, createRequest(customerID, "F-0001-00000007", due))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := svc.GetByID(ctx, invoicedomain.GetInvoiceRequest{ID: invoice.ID.String()})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.CustomerName == nil || *detail.CustomerName != "Juan Pérez" {
		t.Fatalf("cliente_nombre = %v, want Juan Pérez", detail.CustomerName)
	}
}
