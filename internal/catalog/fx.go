package catalog

import (
	"github.com/framehaus/studioflow/internal/catalog/repository"
	"github.com/framehaus/studioflow/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
