// Package domain contains audit trail types.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorID    *snowflake.ID     `gorm:"column:actor_id" json:"actor_id,omitempty"`
	ActorRole  string            `gorm:"column:actor_role" json:"actor_role,omitempty"`
	Action     string            `gorm:"not null" json:"action"`
	TargetType string            `gorm:"column:target_type;not null" json:"target_type"`
	TargetID   *string           `gorm:"column:target_id" json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }

// Entry describes one audit record to append.
type Entry struct {
	ActorID    *snowflake.ID
	ActorRole  string
	Action     string
	TargetType string
	TargetID   *string
	Metadata   map[string]any
}

type Service interface {
	// Record appends an audit entry. Failures are logged, never surfaced;
	// audit must not fail the audited write.
	Record(ctx context.Context, entry Entry)
}
