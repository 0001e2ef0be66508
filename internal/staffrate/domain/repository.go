package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, config *StaffServiceConfig) error
	FindByID(ctx context.Context, id snowflake.ID) (*StaffServiceConfig, error)
	FindByStaffAndService(ctx context.Context, staffID, serviceID snowflake.ID) (*StaffServiceConfig, error)
	ListByStaff(ctx context.Context, staffID snowflake.ID) ([]StaffServiceConfig, error)
	ListEligibleForService(ctx context.Context, serviceID snowflake.ID) ([]EligibleStaff, error)
	Update(ctx context.Context, config *StaffServiceConfig) error
	Delete(ctx context.Context, id snowflake.ID) error
}
