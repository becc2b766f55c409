package payment

import (
	"github.com/coopaguas/facturador/internal/payment/repository"
	"github.com/coopaguas/facturador/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
