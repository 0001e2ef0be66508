package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/pkg/db/option"
)

type Repository interface {
	Insert(ctx context.Context, v *Vendor) error
	FindByID(ctx context.Context, id snowflake.ID) (*Vendor, error)
	List(ctx context.Context, filter ListVendorFilter, opts ...option.QueryOption) ([]*Vendor, error)
	Update(ctx context.Context, v *Vendor) error
	Delete(ctx context.Context, id snowflake.ID) error
}
