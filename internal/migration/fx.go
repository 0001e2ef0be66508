package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/config"
	"github.com/framehaus/studioflow/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if cfg.DBType == "postgres" {
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else if err := seed.AutoMigrate(conn); err != nil {
			return err
		}

		if cfg.Bootstrap.AdminEmail != "" {
			return seed.EnsureAdmin(conn, genID, cfg.Bootstrap)
		}
		return nil
	}),
)
