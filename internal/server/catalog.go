package server

import (
	"net/http"
	"strings"

	catalogdomain "github.com/framehaus/studioflow/internal/catalog/domain"
	"github.com/gin-gonic/gin"
)

type createServiceRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateServiceRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "service.create", "service", resp.ID.String(), map[string]any{
		"name": resp.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleListServices(c *gin.Context) {
	services, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": services})
}

func (s *Server) handleGetService(c *gin.Context) {
	resp, err := s.catalogSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateServiceRequest struct {
	Name *string `json:"name"`
}

func (s *Server) handleUpdateService(c *gin.Context) {
	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.Update(c.Request.Context(), id, catalogdomain.UpdateServiceRequest{
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "service.update", "service", id, map[string]any{
		"name": resp.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleDeleteService(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.catalogSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "service.delete", "service", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
