// Package domain contains per-staff, per-service commission rate types.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// StaffServiceConfig holds the default commission terms a staff member earns
// for one service. At most one row exists per (staff, service) pair.
type StaffServiceConfig struct {
	ID                    snowflake.ID    `gorm:"primaryKey" json:"id"`
	StaffID               snowflake.ID    `gorm:"column:staff_id;not null;uniqueIndex:idx_staff_service" json:"staff_id"`
	ServiceID             snowflake.ID    `gorm:"column:service_id;not null;uniqueIndex:idx_staff_service" json:"service_id"`
	CommissionPercentage  decimal.Decimal `gorm:"column:commission_percentage;type:numeric(5,2);not null" json:"commission_percentage"`
	DueDateOffsetDays     *int            `gorm:"column:due_date_offset_days" json:"due_date_offset_days,omitempty"`
	CreatedAt             time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (StaffServiceConfig) TableName() string { return "staff_service_configs" }

// EligibleStaff is a staff member who may be assigned to a given service,
// carrying the rate defaults a job form prefills from.
type EligibleStaff struct {
	StaffID              snowflake.ID    `json:"staff_id"`
	Name                 string          `json:"name"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	DueDateOffsetDays    *int            `json:"due_date_offset_days,omitempty"`
}

type CreateConfigRequest struct {
	StaffID              string
	ServiceID            string
	CommissionPercentage decimal.Decimal
	DueDateOffsetDays    *int
}

type UpdateConfigRequest struct {
	CommissionPercentage *decimal.Decimal
	DueDateOffsetDays    *int
}

type Service interface {
	Create(ctx context.Context, req CreateConfigRequest) (StaffServiceConfig, error)
	Update(ctx context.Context, id string, req UpdateConfigRequest) (StaffServiceConfig, error)
	Delete(ctx context.Context, id string) error
	ListByStaff(ctx context.Context, staffID string) ([]StaffServiceConfig, error)
	// EligibleForService returns staff configured for the service, sorted by
	// name. An unknown or empty service ID yields an empty slice, not an error.
	EligibleForService(ctx context.Context, serviceID string) ([]EligibleStaff, error)
	// RateFor returns the config for one (staff, service) pair, or nil when
	// the staff member has no rate configured for that service.
	RateFor(ctx context.Context, staffID, serviceID snowflake.ID) (*StaffServiceConfig, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidPercentage = errors.New("invalid_percentage")
	ErrDuplicateConfig   = errors.New("duplicate_config")
	ErrNotFound          = errors.New("not_found")
)
