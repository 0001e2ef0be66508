package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/framehaus/studioflow/pkg/db/option"
	"github.com/framehaus/studioflow/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("vendor.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVendorRequest) (domain.Vendor, error) {
	studioName := strings.TrimSpace(req.StudioName)
	if studioName == "" {
		return domain.Vendor{}, domain.ErrInvalidStudioName
	}
	contactPerson := strings.TrimSpace(req.ContactPerson)
	if contactPerson == "" {
		return domain.Vendor{}, domain.ErrInvalidContactPerson
	}
	mobile := strings.TrimSpace(req.Mobile)
	if mobile == "" {
		return domain.Vendor{}, domain.ErrInvalidMobile
	}

	now := s.clock.Now()
	vendor := domain.Vendor{
		ID:            s.genID.Generate(),
		StudioName:    studioName,
		ContactPerson: contactPerson,
		Mobile:        mobile,
		Email:         req.Email,
		Location:      req.Location,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, &vendor); err != nil {
		return domain.Vendor{}, err
	}
	return vendor, nil
}

func (s *Service) List(ctx context.Context, req domain.ListVendorRequest) (domain.ListVendorResponse, error) {
	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}
	if page.PageSize <= 0 {
		page.PageSize = 50
	}

	items, err := s.repo.List(ctx, domain.ListVendorFilter{StudioName: strings.TrimSpace(req.StudioName)},
		option.WithOrder("created_at DESC, id DESC"),
		option.ApplyPagination(page),
	)
	if err != nil {
		return domain.ListVendorResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, page.PageSize, func(v *domain.Vendor) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        v.ID.String(),
			CreatedAt: v.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			s.log.Warn("encode vendor cursor", zap.Error(err))
			return ""
		}
		return token
	})

	if len(items) > page.PageSize {
		items = items[:page.PageSize]
	}

	vendors := make([]domain.Vendor, 0, len(items))
	for _, item := range items {
		vendors = append(vendors, *item)
	}

	return domain.ListVendorResponse{PageInfo: *pageInfo, Vendors: vendors}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Vendor, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Vendor{}, err
	}

	item, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Vendor{}, err
	}
	if item == nil {
		return domain.Vendor{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateVendorRequest) (domain.Vendor, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Vendor{}, err
	}

	item, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Vendor{}, err
	}
	if item == nil {
		return domain.Vendor{}, domain.ErrNotFound
	}

	if req.StudioName != nil {
		studioName := strings.TrimSpace(*req.StudioName)
		if studioName == "" {
			return domain.Vendor{}, domain.ErrInvalidStudioName
		}
		item.StudioName = studioName
	}
	if req.ContactPerson != nil {
		contactPerson := strings.TrimSpace(*req.ContactPerson)
		if contactPerson == "" {
			return domain.Vendor{}, domain.ErrInvalidContactPerson
		}
		item.ContactPerson = contactPerson
	}
	if req.Mobile != nil {
		mobile := strings.TrimSpace(*req.Mobile)
		if mobile == "" {
			return domain.Vendor{}, domain.ErrInvalidMobile
		}
		item.Mobile = mobile
	}
	if req.Email != nil {
		item.Email = req.Email
	}
	if req.Location != nil {
		item.Location = req.Location
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return domain.Vendor{}, err
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, parsed)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
