package audit

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/framehaus/studioflow/internal/audit/domain"
	"github.com/framehaus/studioflow/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(db *gorm.DB, log *zap.Logger, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &service{
		db:    db,
		log:   log.Named("audit.service"),
		genID: genID,
		clock: clk,
	}
}

func (s *service) Record(ctx context.Context, entry domain.Entry) {
	metadata := datatypes.JSONMap{}
	for k, v := range entry.Metadata {
		metadata[k] = v
	}

	row := domain.AuditLog{
		ID:         s.genID.Generate(),
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Metadata:   metadata,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Warn("audit write failed",
			zap.String("action", entry.Action),
			zap.String("target_type", entry.TargetType),
			zap.Error(err),
		)
	}
}

// Module wires the audit trail service.
var Module = fx.Module("audit",
	fx.Provide(NewService),
)
