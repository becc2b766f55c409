package migration

import (
	"github.com/coopaguas/facturador/internal/config"
	customerdomain "github.com/coopaguas/facturador/internal/customer/domain"
	invoicedomain "github.com/coopaguas/facturador/internal/invoice/domain"
	paymentdomain "github.com/coopaguas/facturador/internal/payment/domain"
	"github.com/coopaguas/facturador/internal/seed"
	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments rely on the model schema.
			if err := conn.AutoMigrate(
				&zonedomain.Zone{},
				&customerdomain.Customer{},
				&invoicedomain.Invoice{},
				&paymentdomain.Payment{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultZones(conn)
	}),
)
