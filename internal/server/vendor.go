package server

import (
	"net/http"
	"strings"

	vendordomain "github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/framehaus/studioflow/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

type createVendorRequest struct {
	StudioName    string  `json:"studio_name"`
	ContactPerson string  `json:"contact_person"`
	Mobile        string  `json:"mobile"`
	Email         *string `json:"email"`
	Location      *string `json:"location"`
	Notes         *string `json:"notes"`
}

func (s *Server) handleCreateVendor(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vendorSvc.Create(c.Request.Context(), vendordomain.CreateVendorRequest{
		StudioName:    strings.TrimSpace(req.StudioName),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Mobile:        strings.TrimSpace(req.Mobile),
		Email:         req.Email,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "vendor.create", "vendor", resp.ID.String(), map[string]any{
		"studio_name": resp.StudioName,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleListVendors(c *gin.Context) {
	var query struct {
		pagination.Pagination
		StudioName string `form:"studio_name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.vendorSvc.List(c.Request.Context(), vendordomain.ListVendorRequest{
		PageToken:  query.PageToken,
		PageSize:   query.PageSize,
		StudioName: strings.TrimSpace(query.StudioName),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleGetVendor(c *gin.Context) {
	resp, err := s.vendorSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateVendorRequest struct {
	StudioName    *string `json:"studio_name"`
	ContactPerson *string `json:"contact_person"`
	Mobile        *string `json:"mobile"`
	Email         *string `json:"email"`
	Location      *string `json:"location"`
	Notes         *string `json:"notes"`
}

func (s *Server) handleUpdateVendor(c *gin.Context) {
	var req updateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.vendorSvc.Update(c.Request.Context(), id, vendordomain.UpdateVendorRequest{
		StudioName:    req.StudioName,
		ContactPerson: req.ContactPerson,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "vendor.update", "vendor", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleDeleteVendor(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.vendorSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "vendor.delete", "vendor", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
