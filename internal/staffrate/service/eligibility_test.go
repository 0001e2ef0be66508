package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/clock"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/framehaus/studioflow/internal/staffrate/domain"
	"github.com/framehaus/studioflow/internal/staffrate/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupEligibility(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&staffdomain.Staff{}, &domain.StaffServiceConfig{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(db),
	})
	return svc, db, node
}

func seedStaff(t *testing.T, db *gorm.DB, node *snowflake.Node, name string) snowflake.ID {
	t.Helper()
	staff := staffdomain.Staff{
		ID:    node.Generate(),
		Name:  name,
		Email: name + "@example.com",
		Role:  staffdomain.RoleUser,
	}
	require.NoError(t, db.Create(&staff).Error)
	return staff.ID
}

func TestEligibleForService(t *testing.T) {
	svc, db, node := setupEligibility(t)
	ctx := context.Background()

	serviceID := node.Generate()
	zara := seedStaff(t, db, node, "Zara")
	amir := seedStaff(t, db, node, "Amir")
	seedStaff(t, db, node, "Unconfigured")

	offset := 14
	_, err := svc.Create(ctx, domain.CreateConfigRequest{
		StaffID:              zara.String(),
		ServiceID:            serviceID.String(),
		CommissionPercentage: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateConfigRequest{
		StaffID:              amir.String(),
		ServiceID:            serviceID.String(),
		CommissionPercentage: decimal.RequireFromString("12.5"),
		DueDateOffsetDays:    &offset,
	})
	require.NoError(t, err)

	eligible, err := svc.EligibleForService(ctx, serviceID.String())
	require.NoError(t, err)
	require.Len(t, eligible, 2)

	// Sorted by staff name, not by insertion order.
	assert.Equal(t, "Amir", eligible[0].Name)
	assert.Equal(t, amir, eligible[0].StaffID)
	assert.True(t, eligible[0].CommissionPercentage.Equal(decimal.RequireFromString("12.5")))
	require.NotNil(t, eligible[0].DueDateOffsetDays)
	assert.Equal(t, 14, *eligible[0].DueDateOffsetDays)

	assert.Equal(t, "Zara", eligible[1].Name)
	assert.Nil(t, eligible[1].DueDateOffsetDays)
}

func TestEligibleForServiceEmptyCases(t *testing.T) {
	svc, _, node := setupEligibility(t)
	ctx := context.Background()

	t.Run("empty service id", func(t *testing.T) {
		eligible, err := svc.EligibleForService(ctx, "")
		assert.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("malformed service id", func(t *testing.T) {
		eligible, err := svc.EligibleForService(ctx, "not-a-snowflake")
		assert.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("no configs for service", func(t *testing.T) {
		eligible, err := svc.EligibleForService(ctx, node.Generate().String())
		assert.NoError(t, err)
		assert.Empty(t, eligible)
	})
}

func TestEligibilityCacheInvalidation(t *testing.T) {
	svc, db, node := setupEligibility(t)
	ctx := context.Background()

	serviceID := node.Generate()
	staffID := seedStaff(t, db, node, "Noor")

	config, err := svc.Create(ctx, domain.CreateConfigRequest{
		StaffID:              staffID.String(),
		ServiceID:            serviceID.String(),
		CommissionPercentage: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	eligible, err := svc.EligibleForService(ctx, serviceID.String())
	require.NoError(t, err)
	require.Len(t, eligible, 1)

	// Deleting the config must be visible on the next read, not after TTL.
	require.NoError(t, svc.Delete(ctx, config.ID.String()))

	eligible, err = svc.EligibleForService(ctx, serviceID.String())
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestConfigValidation(t *testing.T) {
	svc, db, node := setupEligibility(t)
	ctx := context.Background()

	serviceID := node.Generate()
	staffID := seedStaff(t, db, node, "Lena")

	t.Run("percentage out of range", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateConfigRequest{
			StaffID:              staffID.String(),
			ServiceID:            serviceID.String(),
			CommissionPercentage: decimal.NewFromInt(101),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPercentage)
	})

	t.Run("duplicate pair rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, domain.CreateConfigRequest{
			StaffID:              staffID.String(),
			ServiceID:            serviceID.String(),
			CommissionPercentage: decimal.NewFromInt(10),
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, domain.CreateConfigRequest{
			StaffID:              staffID.String(),
			ServiceID:            serviceID.String(),
			CommissionPercentage: decimal.NewFromInt(15),
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateConfig)
	})
}
