package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/framehaus/studioflow/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, v *domain.Vendor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *repo) List(ctx context.Context, filter domain.ListVendorFilter, opts ...option.QueryOption) ([]*domain.Vendor, error) {
	stmt := r.db.WithContext(ctx).Model(&domain.Vendor{})

	if filter.StudioName != "" {
		stmt = stmt.Where("studio_name LIKE ?", "%"+filter.StudioName+"%")
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var vendors []*domain.Vendor
	if err := stmt.Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *repo) Update(ctx context.Context, v *domain.Vendor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Vendor{}).Error
}
