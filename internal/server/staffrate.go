package server

import (
	"net/http"
	"strings"

	ratedomain "github.com/framehaus/studioflow/internal/staffrate/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createStaffRateRequest struct {
	StaffID              string `json:"staff_id"`
	ServiceID            string `json:"service_id"`
	CommissionPercentage string `json:"commission_percentage"`
	DueDateOffsetDays    *int   `json:"due_date_offset_days"`
}

func (s *Server) handleCreateStaffRate(c *gin.Context) {
	var req createStaffRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	percentage, err := decimal.NewFromString(strings.TrimSpace(req.CommissionPercentage))
	if err != nil {
		AbortWithError(c, newValidationError("commission_percentage", "invalid_percentage", "invalid commission percentage"))
		return
	}

	resp, err := s.rateSvc.Create(c.Request.Context(), ratedomain.CreateConfigRequest{
		StaffID:              strings.TrimSpace(req.StaffID),
		ServiceID:            strings.TrimSpace(req.ServiceID),
		CommissionPercentage: percentage,
		DueDateOffsetDays:    req.DueDateOffsetDays,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "staff_rate.create", "staff_rate", resp.ID.String(), map[string]any{
		"staff_id":   resp.StaffID.String(),
		"service_id": resp.ServiceID.String(),
		"percentage": resp.CommissionPercentage.String(),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStaffRateRequest struct {
	CommissionPercentage *string `json:"commission_percentage"`
	DueDateOffsetDays    *int    `json:"due_date_offset_days"`
}

func (s *Server) handleUpdateStaffRate(c *gin.Context) {
	var req updateStaffRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := ratedomain.UpdateConfigRequest{DueDateOffsetDays: req.DueDateOffsetDays}
	if req.CommissionPercentage != nil {
		percentage, err := decimal.NewFromString(strings.TrimSpace(*req.CommissionPercentage))
		if err != nil {
			AbortWithError(c, newValidationError("commission_percentage", "invalid_percentage", "invalid commission percentage"))
			return
		}
		update.CommissionPercentage = &percentage
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.rateSvc.Update(c.Request.Context(), id, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "staff_rate.update", "staff_rate", id, map[string]any{
		"percentage": resp.CommissionPercentage.String(),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleDeleteStaffRate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.rateSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "staff_rate.delete", "staff_rate", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) handleListStaffRates(c *gin.Context) {
	resp, err := s.rateSvc.ListByStaff(c.Request.Context(), strings.TrimSpace(c.Param("staffId")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleEligibleStaff(c *gin.Context) {
	serviceID := strings.TrimSpace(c.Query("service_id"))
	resp, err := s.rateSvc.EligibleForService(c.Request.Context(), serviceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
