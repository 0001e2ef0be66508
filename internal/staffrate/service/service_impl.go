package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/cache"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/internal/commission"
	"github.com/framehaus/studioflow/internal/staffrate/domain"
	"github.com/framehaus/studioflow/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// eligibilityTTL bounds how stale an eligible-staff listing can get when a
// write slips past cache invalidation (another process, direct SQL).
const eligibilityTTL = 30 * time.Second

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	eligibility cache.Cache[snowflake.ID, []domain.EligibleStaff]
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("staffrate.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		eligibility: cache.NewTTLCache[snowflake.ID, []domain.EligibleStaff](),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateConfigRequest) (domain.StaffServiceConfig, error) {
	staffID, err := parseID(req.StaffID)
	if err != nil {
		return domain.StaffServiceConfig{}, err
	}
	serviceID, err := parseID(req.ServiceID)
	if err != nil {
		return domain.StaffServiceConfig{}, err
	}
	if !commission.ValidPercentage(req.CommissionPercentage) {
		return domain.StaffServiceConfig{}, domain.ErrInvalidPercentage
	}

	now := s.clock.Now()
	config := domain.StaffServiceConfig{
		ID:                   s.genID.Generate(),
		StaffID:              staffID,
		ServiceID:            serviceID,
		CommissionPercentage: req.CommissionPercentage,
		DueDateOffsetDays:    req.DueDateOffsetDays,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Insert(ctx, &config); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.StaffServiceConfig{}, domain.ErrDuplicateConfig
		}
		return domain.StaffServiceConfig{}, err
	}

	s.eligibility.Delete(serviceID)
	return config, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateConfigRequest) (domain.StaffServiceConfig, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.StaffServiceConfig{}, err
	}

	config, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.StaffServiceConfig{}, err
	}
	if config == nil {
		return domain.StaffServiceConfig{}, domain.ErrNotFound
	}

	if req.CommissionPercentage != nil {
		if !commission.ValidPercentage(*req.CommissionPercentage) {
			return domain.StaffServiceConfig{}, domain.ErrInvalidPercentage
		}
		config.CommissionPercentage = *req.CommissionPercentage
	}
	if req.DueDateOffsetDays != nil {
		config.DueDateOffsetDays = req.DueDateOffsetDays
	}
	config.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, config); err != nil {
		return domain.StaffServiceConfig{}, err
	}

	s.eligibility.Delete(config.ServiceID)
	return *config, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	config, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return err
	}
	if config == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, parsed); err != nil {
		return err
	}

	s.eligibility.Delete(config.ServiceID)
	return nil
}

func (s *Service) ListByStaff(ctx context.Context, staffID string) ([]domain.StaffServiceConfig, error) {
	parsed, err := parseID(staffID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStaff(ctx, parsed)
}

func (s *Service) EligibleForService(ctx context.Context, serviceID string) ([]domain.EligibleStaff, error) {
	trimmed := strings.TrimSpace(serviceID)
	if trimmed == "" {
		return []domain.EligibleStaff{}, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return []domain.EligibleStaff{}, nil
	}

	if cached, ok := s.eligibility.Get(parsed); ok {
		return cached, nil
	}

	rows, err := s.repo.ListEligibleForService(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.EligibleStaff{}
	}

	s.eligibility.Set(parsed, rows, eligibilityTTL)
	return rows, nil
}

func (s *Service) RateFor(ctx context.Context, staffID, serviceID snowflake.ID) (*domain.StaffServiceConfig, error) {
	return s.repo.FindByStaffAndService(ctx, staffID, serviceID)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
