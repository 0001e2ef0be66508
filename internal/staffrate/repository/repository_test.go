package repository

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/migration"
	"github.com/framehaus/studioflow/internal/staffrate/domain"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupMigratedDB builds the schema from the shipped SQL migrations instead
// of AutoMigrate, so column drift between the two surfaces here.
func setupMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	files, err := migration.Files()
	require.NoError(t, err)
	script, err := fs.ReadFile(files, "0001_init.up.sql")
	require.NoError(t, err)

	for _, stmt := range strings.Split(string(script), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestConfigRoundTripOnMigratedSchema(t *testing.T) {
	db := setupMigratedDB(t)
	repo := Provide(db)
	ctx := context.Background()

	node, err := snowflake.NewNode(9)
	require.NoError(t, err)

	staffID := node.Generate()
	serviceID := node.Generate()
	require.NoError(t, db.Exec(
		"INSERT INTO staff_users (id, name, email, role) VALUES (?, ?, ?, ?)",
		staffID, "Ravi", "ravi@example.com", "USER",
	).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO services (id, name, slug) VALUES (?, ?, ?)",
		serviceID, "Wedding Highlight", "wedding-highlight",
	).Error)

	offset := 14
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, &domain.StaffServiceConfig{
		ID:                   node.Generate(),
		StaffID:              staffID,
		ServiceID:            serviceID,
		CommissionPercentage: decimal.NewFromInt(10),
		DueDateOffsetDays:    &offset,
		CreatedAt:            now,
		UpdatedAt:            now,
	}))

	found, err := repo.FindByStaffAndService(ctx, staffID, serviceID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.CommissionPercentage.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, found.DueDateOffsetDays)
	assert.Equal(t, 14, *found.DueDateOffsetDays)

	eligible, err := repo.ListEligibleForService(ctx, serviceID)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, staffID, eligible[0].StaffID)
	assert.Equal(t, "Ravi", eligible[0].Name)
	assert.True(t, eligible[0].CommissionPercentage.Equal(decimal.NewFromInt(10)))
}
