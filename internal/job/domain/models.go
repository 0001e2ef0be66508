// Package domain contains production job types and the lifecycle contract.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

// Status is a job's lifecycle state. Any status may move to any other,
// including itself; the side effects live in the transition, not in a
// restricted graph.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ValidStatus reports whether raw names a known lifecycle state.
func ValidStatus(raw string) bool {
	switch Status(raw) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// WarningStaffRateNotConfigured is attached to update responses when the
// assigned staff member has no rate configured for the job's service. The
// assignment is kept; the caller decides what to do about the rate.
const WarningStaffRateNotConfigured = "staff_rate_not_configured"

// Job is one unit of production work assigned to a staff member. The
// commission fields are snapshots taken when the job was created or last
// edited; later rate changes do not rewrite them.
type Job struct {
	ID                   snowflake.ID    `gorm:"primaryKey" json:"id"`
	ServiceID            snowflake.ID    `gorm:"column:service_id;not null" json:"service_id"`
	VendorID             *snowflake.ID   `gorm:"column:vendor_id" json:"vendor_id,omitempty"`
	StaffID              snowflake.ID    `gorm:"column:staff_id;not null;index" json:"staff_id"`
	Description          string          `gorm:"not null" json:"description"`
	DataLocation         *string         `gorm:"column:data_location" json:"data_location,omitempty"`
	FinalLocation        *string         `gorm:"column:final_location" json:"final_location,omitempty"`
	JobDueDate           time.Time       `gorm:"column:job_due_date;not null" json:"job_due_date"`
	Amount               decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	CommissionPercentage decimal.Decimal `gorm:"column:commission_percentage;type:numeric(5,2);not null" json:"commission_percentage"`
	CommissionAmount     decimal.Decimal `gorm:"column:commission_amount;type:numeric(18,4);not null" json:"commission_amount"`
	Status               Status          `gorm:"type:text;not null;default:PENDING;index" json:"status"`
	StartedAt            *time.Time      `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt          *time.Time      `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt            time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Job) TableName() string { return "jobs" }

type CreateJobRequest struct {
	ServiceID     string
	VendorID      string
	StaffID       string
	Description   string
	DataLocation  *string
	FinalLocation *string
	JobDueDate    time.Time
	Amount        decimal.Decimal
}

type UpdateJobRequest struct {
	ServiceID     *string
	VendorID      *string
	StaffID       *string
	Description   *string
	DataLocation  *string
	FinalLocation *string
	JobDueDate    *time.Time
	Amount        *decimal.Decimal
}

// UpdateJobResponse carries the saved job plus non-fatal warnings such as
// WarningStaffRateNotConfigured.
type UpdateJobResponse struct {
	Job      Job      `json:"job"`
	Warnings []string `json:"warnings,omitempty"`
}

type ListJobRequest struct {
	PageToken string
	PageSize  int
	Status    string
	// StaffID scopes the listing to one staff member. Handlers force it to
	// the caller for USER-role sessions.
	StaffID string
}

type ListJobFilter struct {
	Status  Status
	StaffID snowflake.ID
}

type ListJobResponse struct {
	pagination.PageInfo
	Jobs []Job `json:"jobs"`
}

type Service interface {
	Create(ctx context.Context, req CreateJobRequest) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	List(ctx context.Context, req ListJobRequest) (ListJobResponse, error)
	Update(ctx context.Context, id string, req UpdateJobRequest) (UpdateJobResponse, error)
	Delete(ctx context.Context, id string) error
	// Transition moves the job to target regardless of its current status.
	// Entering IN_PROGRESS stamps started_at once; entering COMPLETED
	// stamps completed_at every time.
	Transition(ctx context.Context, id string, target string) (Job, error)
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidDueDate     = errors.New("invalid_due_date")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrStaffNotEligible   = errors.New("staff_not_eligible")
	ErrNotFound           = errors.New("not_found")
)
