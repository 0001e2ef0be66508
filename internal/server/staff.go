package server

import (
	"net/http"
	"strings"

	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/gin-gonic/gin"
)

type createStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

func (s *Server) handleCreateStaff(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.staffSvc.Create(c.Request.Context(), staffdomain.CreateStaffRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		Mobile:   strings.TrimSpace(req.Mobile),
		Role:     strings.TrimSpace(req.Role),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "staff.create", "staff", resp.ID.String(), map[string]any{
		"email": resp.Email,
		"role":  string(resp.Role),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleListStaff(c *gin.Context) {
	staff, err := s.staffSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": staff})
}

func (s *Server) handleGetStaff(c *gin.Context) {
	resp, err := s.staffSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStaffRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Mobile   *string `json:"mobile"`
	Role     *string `json:"role"`
}

func (s *Server) handleUpdateStaff(c *gin.Context) {
	var req updateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.staffSvc.Update(c.Request.Context(), id, staffdomain.UpdateStaffRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
		Role:     req.Role,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "staff.update", "staff", id, map[string]any{
		"role": string(resp.Role),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleDeleteStaff(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	// Self-deletion locks the last admin out; refuse it.
	if actor, ok := actorFrom(c); ok && actor.ID.String() == id {
		AbortWithError(c, newValidationError("id", "cannot_delete_self", "cannot delete own account"))
		return
	}

	if err := s.staffSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "staff.delete", "staff", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
