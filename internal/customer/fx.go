package customer

import (
	"github.com/coopaguas/facturador/internal/customer/repository"
	"github.com/coopaguas/facturador/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
