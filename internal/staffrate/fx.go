package staffrate

import (
	"github.com/framehaus/studioflow/internal/staffrate/repository"
	"github.com/framehaus/studioflow/internal/staffrate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("staffrate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
