package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role staffdomain.Role, object string, action string) error {
	_ = ctx

	subject := roleSubject(role)
	if subject == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", string(role)),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func roleSubject(role staffdomain.Role) string {
	switch role {
	case staffdomain.RoleAdmin, staffdomain.RoleManager, staffdomain.RoleUser:
		return fmt.Sprintf("role:%s", strings.ToLower(string(role)))
	default:
		return ""
	}
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:admin", ObjectService, ActionView},
		{"role:admin", ObjectService, ActionCreate},
		{"role:admin", ObjectService, ActionUpdate},
		{"role:admin", ObjectService, ActionDelete},
		{"role:admin", ObjectVendor, ActionView},
		{"role:admin", ObjectVendor, ActionCreate},
		{"role:admin", ObjectVendor, ActionUpdate},
		{"role:admin", ObjectVendor, ActionDelete},
		{"role:admin", ObjectStaff, ActionView},
		{"role:admin", ObjectStaff, ActionCreate},
		{"role:admin", ObjectStaff, ActionUpdate},
		{"role:admin", ObjectStaff, ActionDelete},
		{"role:admin", ObjectStaffRate, ActionView},
		{"role:admin", ObjectStaffRate, ActionCreate},
		{"role:admin", ObjectStaffRate, ActionUpdate},
		{"role:admin", ObjectStaffRate, ActionDelete},
		{"role:admin", ObjectJob, ActionView},
		{"role:admin", ObjectJob, ActionCreate},
		{"role:admin", ObjectJob, ActionUpdate},
		{"role:admin", ObjectJob, ActionDelete},
		{"role:admin", ObjectJob, ActionJobTransition},
		{"role:admin", ObjectAuditLog, ActionView},

		{"role:manager", ObjectService, ActionView},
		{"role:manager", ObjectVendor, ActionView},
		{"role:manager", ObjectVendor, ActionCreate},
		{"role:manager", ObjectStaffRate, ActionView},
		{"role:manager", ObjectJob, ActionView},
		{"role:manager", ObjectJob, ActionJobTransition},

		{"role:user", ObjectService, ActionView},
		{"role:user", ObjectStaffRate, ActionView},
		{"role:user", ObjectJob, ActionView},
		{"role:user", ObjectJob, ActionJobTransition},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}

// Module wires the casbin enforcer and the authorization service.
var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)
