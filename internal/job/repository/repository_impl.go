package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/job/domain"
	"github.com/framehaus/studioflow/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *repo) List(ctx context.Context, filter domain.ListJobFilter, opts ...option.QueryOption) ([]*domain.Job, error) {
	stmt := r.db.WithContext(ctx).Model(&domain.Job{})

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.StaffID != 0 {
		stmt = stmt.Where("staff_id = ?", filter.StaffID)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var jobs []*domain.Job
	if err := stmt.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *repo) Update(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Job{}).Error
}
