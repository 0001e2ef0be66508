package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/pkg/db/option"
)

type Repository interface {
	Insert(ctx context.Context, job *Job) error
	FindByID(ctx context.Context, id snowflake.ID) (*Job, error)
	List(ctx context.Context, filter ListJobFilter, opts ...option.QueryOption) ([]*Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id snowflake.ID) error
}
