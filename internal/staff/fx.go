package staff

import (
	"github.com/framehaus/studioflow/internal/staff/repository"
	"github.com/framehaus/studioflow/internal/staff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("staff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
