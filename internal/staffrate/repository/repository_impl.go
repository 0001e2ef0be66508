package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/staffrate/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, config *domain.StaffServiceConfig) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.StaffServiceConfig, error) {
	var config domain.StaffServiceConfig
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *repo) FindByStaffAndService(ctx context.Context, staffID, serviceID snowflake.ID) (*domain.StaffServiceConfig, error) {
	var config domain.StaffServiceConfig
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND service_id = ?", staffID, serviceID).
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *repo) ListByStaff(ctx context.Context, staffID snowflake.ID) ([]domain.StaffServiceConfig, error) {
	var configs []domain.StaffServiceConfig
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("service_id asc").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *repo) ListEligibleForService(ctx context.Context, serviceID snowflake.ID) ([]domain.EligibleStaff, error) {
	var rows []domain.EligibleStaff
	err := r.db.WithContext(ctx).
		Table("staff_service_configs").
		Select("staff_service_configs.staff_id, staff_users.name, staff_service_configs.commission_percentage, staff_service_configs.due_date_offset_days").
		Joins("JOIN staff_users ON staff_users.id = staff_service_configs.staff_id").
		Where("staff_service_configs.service_id = ?", serviceID).
		Order("staff_users.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Update(ctx context.Context, config *domain.StaffServiceConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.StaffServiceConfig{}).Error
}
