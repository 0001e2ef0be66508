package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Create provisions an auth identity and a staff profile sharing one ID.
	// If the profile insert fails the identity is removed again so no
	// orphaned login can exist.
	Create(ctx context.Context, req CreateStaffRequest) (Staff, error)
	List(ctx context.Context) ([]Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
	Update(ctx context.Context, id string, req UpdateStaffRequest) (Staff, error)
	Delete(ctx context.Context, id string) error
}

type CreateStaffRequest struct {
	Name     string
	Email    string
	Password string
	Mobile   string
	// Role is coerced to a known role; anything unrecognized becomes USER.
	Role string
}

type UpdateStaffRequest struct {
	Name     *string
	Email    *string
	Password *string
	Mobile   *string
	Role     *string
}

type Repository interface {
	Insert(ctx context.Context, staff *Staff) error
	FindByID(ctx context.Context, id snowflake.ID) (*Staff, error)
	FindByEmail(ctx context.Context, email string) (*Staff, error)
	List(ctx context.Context) ([]Staff, error)
	Update(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrEmailTaken   = errors.New("email_taken")
	ErrNotFound     = errors.New("not_found")
)
