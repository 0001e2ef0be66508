// Package authorization enforces role permissions server-side. The UI
// navigation gate is advisory; this is the authoritative check.
package authorization

import (
	"context"
	"errors"

	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
)

const (
	ObjectService   = "service"
	ObjectVendor    = "vendor"
	ObjectStaff     = "staff"
	ObjectStaffRate = "staff_rate"
	ObjectJob       = "job"
	ObjectAuditLog  = "audit_log"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ActionJobTransition = "job.transition"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
)

type Service interface {
	Authorize(ctx context.Context, role staffdomain.Role, object string, action string) error
}
