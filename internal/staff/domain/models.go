// Package domain contains core types for staff accounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role determines a staff member's capability set.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// NormalizeRole coerces arbitrary input to a known role, defaulting to USER.
func NormalizeRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RoleUser
	}
}

// Staff is the profile record paired with an auth identity of the same ID.
type Staff struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null;uniqueIndex" json:"email"`
	Mobile    string       `gorm:"column:mobile" json:"mobile"`
	Role      Role         `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Staff) TableName() string { return "staff_users" }
