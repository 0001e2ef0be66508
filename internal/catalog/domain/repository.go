package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, service *Service) error
	FindByID(ctx context.Context, id snowflake.ID) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
	Update(ctx context.Context, service *Service) error
	Delete(ctx context.Context, id snowflake.ID) error
}
