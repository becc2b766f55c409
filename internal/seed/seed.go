package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type zoneSpec struct {
	name         string
	code         string
	description  string
	baseTariff   string
	excessTariff string
}

var defaultZones = []zoneSpec{
	{"Centro", "ZC", "Casco céntrico de la ciudad", "1500.00", "180.00"},
	{"Norte", "ZN", "Barrios del norte", "1350.00", "160.00"},
	{"Sur", "ZS", "Barrios del sur", "1350.00", "160.00"},
	{"Este", "ZE", "Zona este y parque industrial", "1600.00", "200.00"},
	{"Oeste", "ZO", "Barrios del oeste y zona rural", "1200.00", "150.00"},
}

// EnsureDefaultZones seeds the service zones so a fresh install can
// register customers immediately. Existing codes are left untouched.
func EnsureDefaultZones(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, spec := range defaultZones {
			var count int64
			if err := tx.WithContext(ctx).
				Model(&zonedomain.Zone{}).
				Where("codigo = ?", spec.code).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			now := time.Now().UTC()
			zone := zonedomain.Zone{
				ID:           node.Generate(),
				Name:         spec.name,
				Description:  spec.description,
				Code:         spec.code,
				BaseTariff:   decimal.RequireFromString(spec.baseTariff),
				ExcessTariff: decimal.RequireFromString(spec.excessTariff),
				Active:       true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.WithContext(ctx).Create(&zone).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
