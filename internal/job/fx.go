package job

import (
	"github.com/framehaus/studioflow/internal/job/repository"
	"github.com/framehaus/studioflow/internal/job/service"
	"go.uber.org/fx"
)

var Module = fx.Module("job.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
