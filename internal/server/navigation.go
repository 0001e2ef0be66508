package server

import (
	"net/http"

	"github.com/framehaus/studioflow/internal/navigation"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleNavigation(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": navigation.VisibleNavItems(actor.Role)})
}
