package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// CreateIdentity registers credentials for a new staff account. It is
	// the first step of the staff-creation saga; DeleteIdentity is its
	// compensating action.
	CreateIdentity(ctx context.Context, req CreateIdentityRequest) (*User, error)
	DeleteIdentity(ctx context.Context, id snowflake.ID) error
	UpdateIdentity(ctx context.Context, id snowflake.ID, req UpdateIdentityRequest) error

	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	ChangePassword(ctx context.Context, userID snowflake.ID, newPassword string) error
}

type CreateIdentityRequest struct {
	ID       snowflake.ID
	Email    string
	Password string
}

type UpdateIdentityRequest struct {
	Email    *string
	Password *string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	UserID    snowflake.ID
	SessionID snowflake.ID
	RawToken  string
	ExpiresAt time.Time
}
