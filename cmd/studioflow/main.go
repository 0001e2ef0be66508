package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/audit"
	"github.com/framehaus/studioflow/internal/auth"
	"github.com/framehaus/studioflow/internal/auth/session"
	"github.com/framehaus/studioflow/internal/authorization"
	"github.com/framehaus/studioflow/internal/catalog"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/internal/config"
	"github.com/framehaus/studioflow/internal/job"
	"github.com/framehaus/studioflow/internal/logger"
	"github.com/framehaus/studioflow/internal/migration"
	"github.com/framehaus/studioflow/internal/observability"
	"github.com/framehaus/studioflow/internal/ratelimit"
	"github.com/framehaus/studioflow/internal/server"
	"github.com/framehaus/studioflow/internal/staff"
	"github.com/framehaus/studioflow/internal/staffrate"
	"github.com/framehaus/studioflow/internal/vendors"
	"github.com/framehaus/studioflow/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,

		authorization.Module,
		audit.Module,
		auth.Module,
		session.Module,
		ratelimit.Module,

		catalog.Module,
		vendors.Module,
		staff.Module,
		staffrate.Module,
		job.Module,

		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
