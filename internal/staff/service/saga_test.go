package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/framehaus/studioflow/internal/staff/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAuth struct {
	identities map[snowflake.ID]string
	createErr  error
	deleted    []snowflake.ID
	updates    []authdomain.UpdateIdentityRequest
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{identities: make(map[snowflake.ID]string)}
}

func (f *fakeAuth) CreateIdentity(_ context.Context, req authdomain.CreateIdentityRequest) (*authdomain.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.identities[req.ID] = req.Email
	return &authdomain.User{ID: req.ID, Email: req.Email}, nil
}

func (f *fakeAuth) DeleteIdentity(_ context.Context, id snowflake.ID) error {
	delete(f.identities, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAuth) UpdateIdentity(_ context.Context, id snowflake.ID, req authdomain.UpdateIdentityRequest) error {
	if _, ok := f.identities[id]; !ok {
		return authdomain.ErrUserNotFound
	}
	if req.Email != nil {
		f.identities[id] = *req.Email
	}
	f.updates = append(f.updates, req)
	return nil
}

func (f *fakeAuth) Login(context.Context, authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuth) Logout(context.Context, string) error { return nil }

func (f *fakeAuth) Authenticate(context.Context, string) (*authdomain.Session, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuth) ChangePassword(context.Context, snowflake.ID, string) error { return nil }

func setupStaff(t *testing.T, auth authdomain.Service) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Staff{}))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(db),
		Auth:  auth,
	})
	return svc, db
}

func TestCreateStaffProvisionsIdentityAndProfile(t *testing.T) {
	auth := newFakeAuth()
	svc, _ := setupStaff(t, auth)

	staff, err := svc.Create(context.Background(), domain.CreateStaffRequest{
		Name:     "Mira Kovac",
		Email:    "Mira@Example.com",
		Password: "correct horse",
		Mobile:   "555-0101",
		Role:     "MANAGER",
	})
	require.NoError(t, err)

	assert.Equal(t, "mira@example.com", staff.Email)
	assert.Equal(t, domain.RoleManager, staff.Role)

	// Identity and profile share one ID.
	assert.Equal(t, "mira@example.com", auth.identities[staff.ID])
}

func TestCreateStaffCompensatesWhenProfileInsertFails(t *testing.T) {
	auth := newFakeAuth()
	svc, _ := setupStaff(t, auth)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateStaffRequest{
		Name:     "First",
		Email:    "shared@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// Same profile email, so the identity step succeeds (fake has no
	// uniqueness) and the profile insert hits the unique index.
	_, err = svc.Create(ctx, domain.CreateStaffRequest{
		Name:     "Second",
		Email:    "shared@example.com",
		Password: "correct horse",
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	require.Len(t, auth.deleted, 1)
	_, stillThere := auth.identities[auth.deleted[0]]
	assert.False(t, stillThere)
}

func TestCreateStaffIdentityConflict(t *testing.T) {
	auth := newFakeAuth()
	auth.createErr = authdomain.ErrUserExists
	svc, db := setupStaff(t, auth)

	_, err := svc.Create(context.Background(), domain.CreateStaffRequest{
		Name:     "Mira",
		Email:    "mira@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&domain.Staff{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateStaffCoercesUnknownRole(t *testing.T) {
	auth := newFakeAuth()
	svc, _ := setupStaff(t, auth)

	staff, err := svc.Create(context.Background(), domain.CreateStaffRequest{
		Name:     "Mira",
		Email:    "mira@example.com",
		Password: "correct horse",
		Role:     "SUPERUSER",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, staff.Role)
}

func TestUpdateStaffPartialFields(t *testing.T) {
	auth := newFakeAuth()
	svc, _ := setupStaff(t, auth)
	ctx := context.Background()

	staff, err := svc.Create(ctx, domain.CreateStaffRequest{
		Name:     "Mira",
		Email:    "mira@example.com",
		Password: "correct horse",
		Mobile:   "555-0101",
		Role:     "USER",
	})
	require.NoError(t, err)

	role := "ADMIN"
	updated, err := svc.Update(ctx, staff.ID.String(), domain.UpdateStaffRequest{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "Mira", updated.Name)
	assert.Equal(t, "555-0101", updated.Mobile)
	// No credential change, so the identity was left alone.
	assert.Empty(t, auth.updates)
}

func TestUpdateStaffEmailPropagatesToIdentity(t *testing.T) {
	auth := newFakeAuth()
	svc, _ := setupStaff(t, auth)
	ctx := context.Background()

	staff, err := svc.Create(ctx, domain.CreateStaffRequest{
		Name:     "Mira",
		Email:    "mira@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	email := "mira.k@example.com"
	_, err = svc.Update(ctx, staff.ID.String(), domain.UpdateStaffRequest{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "mira.k@example.com", auth.identities[staff.ID])
}

func TestDeleteStaffRemovesIdentity(t *testing.T) {
	auth := newFakeAuth()
	svc, db := setupStaff(t, auth)
	ctx := context.Background()

	staff, err := svc.Create(ctx, domain.CreateStaffRequest{
		Name:     "Mira",
		Email:    "mira@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, staff.ID.String()))

	var count int64
	require.NoError(t, db.Model(&domain.Staff{}).Count(&count).Error)
	assert.Zero(t, count)
	_, stillThere := auth.identities[staff.ID]
	assert.False(t, stillThere)
}
