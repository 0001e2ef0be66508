package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/framehaus/studioflow/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
	Auth  authdomain.Service
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	auth  authdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("staff.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		auth:  p.Auth,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateStaffRequest) (domain.Staff, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Staff{}, domain.ErrInvalidName
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.Staff{}, domain.ErrInvalidEmail
	}

	id := s.genID.Generate()

	if _, err := s.auth.CreateIdentity(ctx, authdomain.CreateIdentityRequest{
		ID:       id,
		Email:    email,
		Password: req.Password,
	}); err != nil {
		if errors.Is(err, authdomain.ErrUserExists) {
			return domain.Staff{}, domain.ErrEmailTaken
		}
		return domain.Staff{}, err
	}

	now := s.clock.Now()
	staff := domain.Staff{
		ID:        id,
		Name:      name,
		Email:     email,
		Mobile:    strings.TrimSpace(req.Mobile),
		Role:      domain.NormalizeRole(req.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, &staff); err != nil {
		if delErr := s.auth.DeleteIdentity(ctx, id); delErr != nil {
			s.log.Error("compensating identity delete failed",
				zap.String("staff_id", id.String()),
				zap.Error(delErr))
		}
		if db.IsDuplicateKeyErr(err) {
			return domain.Staff{}, domain.ErrEmailTaken
		}
		return domain.Staff{}, err
	}

	return staff, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Staff, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Staff{}, err
	}

	staff, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Staff{}, err
	}
	if staff == nil {
		return domain.Staff{}, domain.ErrNotFound
	}
	return *staff, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Staff, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return domain.Staff{}, domain.ErrInvalidEmail
	}

	staff, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return domain.Staff{}, err
	}
	if staff == nil {
		return domain.Staff{}, domain.ErrNotFound
	}
	return *staff, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateStaffRequest) (domain.Staff, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Staff{}, err
	}

	staff, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Staff{}, err
	}
	if staff == nil {
		return domain.Staff{}, domain.ErrNotFound
	}

	identity := authdomain.UpdateIdentityRequest{Password: req.Password}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Staff{}, domain.ErrInvalidName
		}
		staff.Name = name
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return domain.Staff{}, domain.ErrInvalidEmail
		}
		staff.Email = email
		identity.Email = &email
	}
	if req.Mobile != nil {
		staff.Mobile = strings.TrimSpace(*req.Mobile)
	}
	if req.Role != nil {
		staff.Role = domain.NormalizeRole(*req.Role)
	}
	staff.UpdatedAt = s.clock.Now()

	// Identity first so a credential conflict never leaves the profile
	// updated while the login still carries the old email.
	if identity.Email != nil || identity.Password != nil {
		if err := s.auth.UpdateIdentity(ctx, parsed, identity); err != nil {
			if errors.Is(err, authdomain.ErrUserExists) {
				return domain.Staff{}, domain.ErrEmailTaken
			}
			return domain.Staff{}, err
		}
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Staff{}, domain.ErrEmailTaken
		}
		return domain.Staff{}, err
	}
	return *staff, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, parsed); err != nil {
		return err
	}

	if err := s.auth.DeleteIdentity(ctx, parsed); err != nil && !errors.Is(err, authdomain.ErrUserNotFound) {
		s.log.Error("identity delete failed after profile delete",
			zap.String("staff_id", parsed.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
