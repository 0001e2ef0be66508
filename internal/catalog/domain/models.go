// Package domain contains the production service catalog types.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Service is a category of production work offered by the studio, e.g.
// "Wedding Highlight".
type Service struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Slug      string       `gorm:"not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Service) TableName() string { return "services" }

type CreateServiceRequest struct {
	Name string
}

type UpdateServiceRequest struct {
	Name *string
}

type ServiceAPI interface {
	Create(ctx context.Context, req CreateServiceRequest) (Service, error)
	List(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id string) (Service, error)
	Update(ctx context.Context, id string, req UpdateServiceRequest) (Service, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNameTaken   = errors.New("service_name_taken")
	ErrNotFound    = errors.New("not_found")
)
