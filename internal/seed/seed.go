// Package seed bootstraps a usable database for local and self-hosted
// installs.
package seed

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/framehaus/studioflow/internal/audit/domain"
	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/framehaus/studioflow/internal/auth/password"
	catalogdomain "github.com/framehaus/studioflow/internal/catalog/domain"
	"github.com/framehaus/studioflow/internal/config"
	jobdomain "github.com/framehaus/studioflow/internal/job/domain"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	staffratedomain "github.com/framehaus/studioflow/internal/staffrate/domain"
	vendordomain "github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the gorm models. The postgres path
// uses SQL migrations instead; this covers sqlite (tests, standalone runs).
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&staffdomain.Staff{},
		&catalogdomain.Service{},
		&vendordomain.Vendor{},
		&staffratedomain.StaffServiceConfig{},
		&jobdomain.Job{},
		&auditdomain.AuditLog{},
	)
}

// EnsureAdmin creates the bootstrap ADMIN identity and profile if no staff
// account exists yet.
func EnsureAdmin(conn *gorm.DB, genID *snowflake.Node, cfg config.BootstrapConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := conn.Model(&staffdomain.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	id := genID.Generate()

	return conn.Transaction(func(tx *gorm.DB) error {
		user := authdomain.User{
			ID:                  id,
			ExternalID:          uuid.NewString(),
			Email:               email,
			PasswordHash:        &hashed,
			LastPasswordChanged: &now,
			Metadata:            datatypes.JSONMap{"seeded": true},
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		staff := staffdomain.Staff{
			ID:        id,
			Name:      cfg.AdminName,
			Email:     email,
			Role:      staffdomain.RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&staff).Error
	})
}
