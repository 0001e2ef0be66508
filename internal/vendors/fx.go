package vendors

import (
	"github.com/framehaus/studioflow/internal/vendors/repository"
	"github.com/framehaus/studioflow/internal/vendors/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vendor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
