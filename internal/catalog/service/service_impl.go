package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/catalog/domain"
	"github.com/framehaus/studioflow/internal/clock"
	"github.com/framehaus/studioflow/pkg/db"
	"github.com/gosimple/slug"
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

func New(p Params) domain.ServiceAPI {
	return &Service{
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Service{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	service := domain.Service{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, &service); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Service{}, domain.ErrNameTaken
		}
		return domain.Service{}, err
	}

	return service, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		services = append(services, *item)
	}
	return services, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Service, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Service{}, err
	}

	item, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateServiceRequest) (domain.Service, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Service{}, err
	}

	item, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Service{}, err
	}
	if item == nil {
		return domain.Service{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Service{}, domain.ErrInvalidName
		}
		item.Name = name
		item.Slug = slug.Make(name)
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Service{}, domain.ErrNameTaken
		}
		return domain.Service{}, err
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
