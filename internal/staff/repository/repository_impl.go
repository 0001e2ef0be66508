package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/staff/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, staff *domain.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Staff, error) {
	var staff domain.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	var staff domain.Staff
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *repo) List(ctx context.Context) ([]domain.Staff, error) {
	var staff []domain.Staff
	err := r.db.WithContext(ctx).Order("name asc").Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *repo) Update(ctx context.Context, staff *domain.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Staff{}).Error
}
