package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/internal/commission"
	"github.com/framehaus/studioflow/internal/job/domain"
	"github.com/framehaus/studioflow/internal/observability"
	ratedomain "github.com/framehaus/studioflow/internal/staffrate/domain"
	"github.com/framehaus/studioflow/pkg/db/option"
	"github.com/framehaus/studioflow/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Rates   ratedomain.Service
	Metrics *observability.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	rates   ratedomain.Service
	metrics *observability.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("job.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		rates:   p.Rates,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateJobRequest) (domain.Job, error) {
	serviceID, err := parseID(req.ServiceID)
	if err != nil {
		return domain.Job{}, err
	}
	staffID, err := parseID(req.StaffID)
	if err != nil {
		return domain.Job{}, err
	}

	var vendorID *snowflake.ID
	if strings.TrimSpace(req.VendorID) != "" {
		parsed, err := parseID(req.VendorID)
		if err != nil {
			return domain.Job{}, err
		}
		vendorID = &parsed
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Job{}, domain.ErrInvalidDescription
	}
	if req.Amount.IsNegative() {
		return domain.Job{}, domain.ErrInvalidAmount
	}

	rate, err := s.rates.RateFor(ctx, staffID, serviceID)
	if err != nil {
		return domain.Job{}, err
	}
	if rate == nil {
		return domain.Job{}, domain.ErrStaffNotEligible
	}

	dueDate := req.JobDueDate
	if dueDate.IsZero() {
		if rate.DueDateOffsetDays == nil {
			return domain.Job{}, domain.ErrInvalidDueDate
		}
		dueDate = s.clock.Now().AddDate(0, 0, *rate.DueDateOffsetDays)
	}

	commissionAmount, err := commission.Compute(req.Amount, rate.CommissionPercentage)
	if err != nil {
		return domain.Job{}, err
	}

	now := s.clock.Now()
	job := domain.Job{
		ID:                   s.genID.Generate(),
		ServiceID:            serviceID,
		VendorID:             vendorID,
		StaffID:              staffID,
		Description:          description,
		DataLocation:         req.DataLocation,
		FinalLocation:        req.FinalLocation,
		JobDueDate:           dueDate,
		Amount:               req.Amount,
		CommissionPercentage: rate.CommissionPercentage,
		CommissionAmount:     commissionAmount,
		Status:               domain.StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Insert(ctx, &job); err != nil {
		return domain.Job{}, err
	}

	if s.metrics != nil {
		s.metrics.JobsCreated.Inc()
		s.metrics.CommissionsComputed.Inc()
	}
	s.log.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("staff_id", staffID.String()),
		zap.String("service_id", serviceID.String()))
	return job, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Job, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Job{}, err
	}

	job, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Job{}, err
	}
	if job == nil {
		return domain.Job{}, domain.ErrNotFound
	}
	return *job, nil
}

func (s *Service) List(ctx context.Context, req domain.ListJobRequest) (domain.ListJobResponse, error) {
	filter := domain.ListJobFilter{}
	if req.Status != "" {
		if !domain.ValidStatus(req.Status) {
			return domain.ListJobResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = domain.Status(req.Status)
	}
	if strings.TrimSpace(req.StaffID) != "" {
		staffID, err := parseID(req.StaffID)
		if err != nil {
			return domain.ListJobResponse{}, err
		}
		filter.StaffID = staffID
	}

	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}
	if page.PageSize <= 0 {
		page.PageSize = 50
	}

	items, err := s.repo.List(ctx, filter,
		option.WithOrder("created_at DESC, id DESC"),
		option.ApplyPagination(page),
	)
	if err != nil {
		return domain.ListJobResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, page.PageSize, func(j *domain.Job) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        j.ID.String(),
			CreatedAt: j.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			s.log.Warn("encode job cursor", zap.Error(err))
			return ""
		}
		return token
	})

	if len(items) > page.PageSize {
		items = items[:page.PageSize]
	}

	jobs := make([]domain.Job, 0, len(items))
	for _, item := range items {
		jobs = append(jobs, *item)
	}
	return domain.ListJobResponse{PageInfo: *pageInfo, Jobs: jobs}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateJobRequest) (domain.UpdateJobResponse, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.UpdateJobResponse{}, err
	}

	job, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.UpdateJobResponse{}, err
	}
	if job == nil {
		return domain.UpdateJobResponse{}, domain.ErrNotFound
	}

	recompute := false

	if req.ServiceID != nil {
		serviceID, err := parseID(*req.ServiceID)
		if err != nil {
			return domain.UpdateJobResponse{}, err
		}
		if serviceID != job.ServiceID {
			job.ServiceID = serviceID
			recompute = true
		}
	}
	if req.StaffID != nil {
		staffID, err := parseID(*req.StaffID)
		if err != nil {
			return domain.UpdateJobResponse{}, err
		}
		if staffID != job.StaffID {
			job.StaffID = staffID
			recompute = true
		}
	}
	if req.VendorID != nil {
		if strings.TrimSpace(*req.VendorID) == "" {
			job.VendorID = nil
		} else {
			vendorID, err := parseID(*req.VendorID)
			if err != nil {
				return domain.UpdateJobResponse{}, err
			}
			job.VendorID = &vendorID
		}
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.UpdateJobResponse{}, domain.ErrInvalidDescription
		}
		job.Description = description
	}
	if req.DataLocation != nil {
		job.DataLocation = req.DataLocation
	}
	if req.FinalLocation != nil {
		job.FinalLocation = req.FinalLocation
	}
	if req.JobDueDate != nil {
		if req.JobDueDate.IsZero() {
			return domain.UpdateJobResponse{}, domain.ErrInvalidDueDate
		}
		job.JobDueDate = *req.JobDueDate
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return domain.UpdateJobResponse{}, domain.ErrInvalidAmount
		}
		if !req.Amount.Equal(job.Amount) {
			job.Amount = *req.Amount
			recompute = true
		}
	}

	var warnings []string
	if recompute {
		rate, err := s.rates.RateFor(ctx, job.StaffID, job.ServiceID)
		if err != nil {
			return domain.UpdateJobResponse{}, err
		}
		if rate == nil {
			// Keep the assignment and the previously snapshotted
			// percentage; the caller is told the rate is missing.
			warnings = append(warnings, domain.WarningStaffRateNotConfigured)
		} else {
			job.CommissionPercentage = rate.CommissionPercentage
		}
		job.CommissionAmount, err = commission.Compute(job.Amount, job.CommissionPercentage)
		if err != nil {
			return domain.UpdateJobResponse{}, err
		}
		if s.metrics != nil {
			s.metrics.CommissionsComputed.Inc()
		}
	}
	job.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, job); err != nil {
		return domain.UpdateJobResponse{}, err
	}
	return domain.UpdateJobResponse{Job: *job, Warnings: warnings}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, parsed)
}

func (s *Service) Transition(ctx context.Context, id string, target string) (domain.Job, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Job{}, err
	}
	if !domain.ValidStatus(target) {
		return domain.Job{}, domain.ErrInvalidStatus
	}
	status := domain.Status(target)

	job, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Job{}, err
	}
	if job == nil {
		return domain.Job{}, domain.ErrNotFound
	}

	now := s.clock.Now()
	switch status {
	case domain.StatusInProgress:
		if job.StartedAt == nil {
			startedAt := now
			job.StartedAt = &startedAt
		}
	case domain.StatusCompleted:
		completedAt := now
		job.CompletedAt = &completedAt
	}
	job.Status = status
	job.UpdatedAt = now

	if err := s.repo.Update(ctx, job); err != nil {
		return domain.Job{}, err
	}

	if s.metrics != nil {
		s.metrics.JobTransitions.WithLabelValues(string(status)).Inc()
	}
	s.log.Info("job transitioned",
		zap.String("job_id", job.ID.String()),
		zap.String("status", string(status)))
	return *job, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
