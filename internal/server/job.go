package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/framehaus/studioflow/internal/authorization"
	jobdomain "github.com/framehaus/studioflow/internal/job/domain"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/framehaus/studioflow/pkg/db/pagination"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createJobRequest struct {
	ServiceID     string  `json:"service_id"`
	VendorID      string  `json:"vendor_id"`
	StaffID       string  `json:"staff_id"`
	Description   string  `json:"description"`
	DataLocation  *string `json:"data_location"`
	FinalLocation *string `json:"final_location"`
	JobDueDate    string  `json:"job_due_date"`
	Amount        string  `json:"amount"`
}

func (s *Server) handleCreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		AbortWithError(c, newValidationError("amount", "invalid_amount", "invalid amount"))
		return
	}

	dueDate, err := parseOptionalDate(req.JobDueDate)
	if err != nil {
		AbortWithError(c, newValidationError("job_due_date", "invalid_due_date", "invalid job due date"))
		return
	}

	resp, err := s.jobSvc.Create(c.Request.Context(), jobdomain.CreateJobRequest{
		ServiceID:     strings.TrimSpace(req.ServiceID),
		VendorID:      strings.TrimSpace(req.VendorID),
		StaffID:       strings.TrimSpace(req.StaffID),
		Description:   req.Description,
		DataLocation:  req.DataLocation,
		FinalLocation: req.FinalLocation,
		JobDueDate:    dueDate,
		Amount:        amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "job.create", "job", resp.ID.String(), map[string]any{
		"staff_id":          resp.StaffID.String(),
		"service_id":        resp.ServiceID.String(),
		"amount":            resp.Amount.String(),
		"commission_amount": resp.CommissionAmount.String(),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleListJobs(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status  string `form:"status"`
		StaffID string `form:"staff_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	staffID := strings.TrimSpace(query.StaffID)
	if actor.Role == staffdomain.RoleUser {
		// USER sessions only ever see their own assignments.
		staffID = actor.ID.String()
	}

	resp, err := s.jobSvc.List(c.Request.Context(), jobdomain.ListJobRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		StaffID:   staffID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleGetJob(c *gin.Context) {
	resp, err := s.jobSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.requireJobVisibility(c, resp); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateJobRequest struct {
	ServiceID     *string `json:"service_id"`
	VendorID      *string `json:"vendor_id"`
	StaffID       *string `json:"staff_id"`
	Description   *string `json:"description"`
	DataLocation  *string `json:"data_location"`
	FinalLocation *string `json:"final_location"`
	JobDueDate    *string `json:"job_due_date"`
	Amount        *string `json:"amount"`
}

func (s *Server) handleUpdateJob(c *gin.Context) {
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := jobdomain.UpdateJobRequest{
		ServiceID:     req.ServiceID,
		VendorID:      req.VendorID,
		StaffID:       req.StaffID,
		Description:   req.Description,
		DataLocation:  req.DataLocation,
		FinalLocation: req.FinalLocation,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(*req.Amount))
		if err != nil {
			AbortWithError(c, newValidationError("amount", "invalid_amount", "invalid amount"))
			return
		}
		update.Amount = &amount
	}
	if req.JobDueDate != nil {
		dueDate, err := parseOptionalDate(*req.JobDueDate)
		if err != nil || dueDate.IsZero() {
			AbortWithError(c, newValidationError("job_due_date", "invalid_due_date", "invalid job due date"))
			return
		}
		update.JobDueDate = &dueDate
	}

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.jobSvc.Update(c.Request.Context(), id, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "job.update", "job", id, map[string]any{
		"warnings": resp.Warnings,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) handleDeleteJob(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.jobSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "job.delete", "job", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type transitionJobRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleTransitionJob(c *gin.Context) {
	var req transitionJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := strings.TrimSpace(c.Param("id"))

	current, err := s.jobSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.requireJobVisibility(c, current); err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.jobSvc.Transition(c.Request.Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "job.transition", "job", id, map[string]any{
		"from": string(current.Status),
		"to":   string(resp.Status),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// requireJobVisibility restricts USER sessions to their own assignments.
func (s *Server) requireJobVisibility(c *gin.Context, job jobdomain.Job) error {
	actor, ok := actorFrom(c)
	if !ok {
		return ErrUnauthorized
	}
	if actor.Role == staffdomain.RoleUser && job.StaffID != actor.ID {
		return authorization.ErrForbidden
	}
	return nil
}

func parseOptionalDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, trimmed)
}
