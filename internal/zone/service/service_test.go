package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	zonerepo "github.com/coopaguas/facturador/internal/zone/repository"
	zoneservice "github.com/coopaguas/facturador/internal/zone/service"
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
		`CREATE UNIQUE INDEX ux_zonas_codigo ON zonas (codigo)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func newService(t *testing.T, db *gorm.DB) zonedomain.Service {
	t.Helper()
	return zoneservice.New(zoneservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: zonerepo.Provide(),
	})
}

func seedZone(t *testing.T, db *gorm.DB, node *snowflake.Node, name, code string, active bool) snowflake.ID {
	t.Helper()

	id := node.Generate()
	err := db.Exec(
		`INSERT INTO zonas (id, nombre, descripcion, codigo, tarifa_basica, tarifa_exceso, estado, created_at, updated_at)
		 VALUES (?, ?, '', ?, ?, ?, ?, ?, ?)`,
		id,
		name,
		code,
		decimal.RequireFromString("1500.00"),
		decimal.RequireFromString("180.00"),
		active,
		time.Now().UTC(),
		time.Now().UTC(),
	).Error
	if err != nil {
		t.Fatalf("seed zone: %v", err)
	}
	return id
}

func TestListReturnsActiveZonesOrderedByName(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(t, db)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	seedZone(t, db, node, "Sur", "ZS", true)
	seedZone(t, db, node, "Centro", "ZC", true)
	seedZone(t, db, node, "Norte", "ZN", false)

	zones, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("got %d zones, want 2", len(zones))
	}
	if zones[0].Name != "Centro" || zones[1].Name != "Sur" {
		t.Fatalf("unexpected order: %s, %s", zones[0].Name, zones[1].Name)
	}
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(t, db)

	_, err := svc.GetByID(ctx, zonedomain.GetZoneRequest{ID: "abc"})
	if err != zonedomain.ErrInvalidID {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
}

func TestGetByIDSkipsInactiveZones(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(t, db)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	id := seedZone(t, db, node, "Oeste", "ZO", false)

	_, err = svc.GetByID(ctx, zonedomain.GetZoneRequest{ID: id.String()})
	if err != zonedomain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetByIDReturnsZone(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := newService(t, db)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	id := seedZone(t, db, node, "Este", "ZE", true)

	zone, err := svc.GetByID(ctx, zonedomain.GetZoneRequest{ID: id.String()})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if zone.ID != id || zone.Name != "Este" {
		t.Fatalf("unexpected zone: %+v", zone)
	}
}
