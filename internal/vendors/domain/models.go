// Package domain contains vendor (partner studio) types.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/pkg/db/pagination"
)

// Vendor is an external studio or partner associated with jobs.
type Vendor struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	StudioName    string       `gorm:"column:studio_name;not null" json:"studio_name"`
	ContactPerson string       `gorm:"column:contact_person;not null" json:"contact_person"`
	Mobile        string       `gorm:"not null" json:"mobile"`
	Email         *string      `json:"email,omitempty"`
	Location      *string      `json:"location,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Vendor) TableName() string { return "vendors" }

type CreateVendorRequest struct {
	StudioName    string
	ContactPerson string
	Mobile        string
	Email         *string
	Location      *string
	Notes         *string
}

type UpdateVendorRequest struct {
	StudioName    *string
	ContactPerson *string
	Mobile        *string
	Email         *string
	Location      *string
	Notes         *string
}

type ListVendorRequest struct {
	PageToken  string
	PageSize   int
	StudioName string
}

type ListVendorFilter struct {
	StudioName string
}

type ListVendorResponse struct {
	pagination.PageInfo
	Vendors []Vendor `json:"vendors"`
}

type Service interface {
	Create(ctx context.Context, req CreateVendorRequest) (Vendor, error)
	List(ctx context.Context, req ListVendorRequest) (ListVendorResponse, error)
	GetByID(ctx context.Context, id string) (Vendor, error)
	Update(ctx context.Context, id string, req UpdateVendorRequest) (Vendor, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidStudioName    = errors.New("invalid_studio_name")
	ErrInvalidContactPerson = errors.New("invalid_contact_person")
	ErrInvalidMobile        = errors.New("invalid_mobile")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
)
