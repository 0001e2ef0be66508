package server

import (
	auditdomain "github.com/framehaus/studioflow/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

// recordAudit appends an audit entry attributed to the session actor.
func (s *Server) recordAudit(c *gin.Context, action, targetType, targetID string, metadata map[string]any) {
	if s.auditSvc == nil {
		return
	}

	entry := auditdomain.Entry{
		Action:     action,
		TargetType: targetType,
		Metadata:   metadata,
	}
	if targetID != "" {
		entry.TargetID = &targetID
	}
	if actor, ok := actorFrom(c); ok {
		actorID := actor.ID
		entry.ActorID = &actorID
		entry.ActorRole = string(actor.Role)
	}

	s.auditSvc.Record(c.Request.Context(), entry)
}
