package invoice

import (
	"github.com/coopaguas/facturador/internal/invoice/repository"
	"github.com/coopaguas/facturador/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
