package zone

import (
	"github.com/coopaguas/facturador/internal/zone/repository"
	"github.com/coopaguas/facturador/internal/zone/service"
	"go.uber.org/fx"
)

var Module = fx.Module("zone.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
