package server

import (
	"errors"
	"net/http"

	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/framehaus/studioflow/internal/authorization"
	catalogdomain "github.com/framehaus/studioflow/internal/catalog/domain"
	"github.com/framehaus/studioflow/internal/commission"
	jobdomain "github.com/framehaus/studioflow/internal/job/domain"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	ratedomain "github.com/framehaus/studioflow/internal/staffrate/domain"
	vendordomain "github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTooManyLogins  = errors.New("too_many_login_attempts")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

var validationSentinels = map[error]string{
	catalogdomain.ErrInvalidName:         "name",
	catalogdomain.ErrInvalidID:           "id",
	vendordomain.ErrInvalidStudioName:    "studio_name",
	vendordomain.ErrInvalidContactPerson: "contact_person",
	vendordomain.ErrInvalidMobile:        "mobile",
	vendordomain.ErrInvalidID:            "id",
	staffdomain.ErrInvalidName:           "name",
	staffdomain.ErrInvalidEmail:          "email",
	staffdomain.ErrInvalidID:             "id",
	ratedomain.ErrInvalidID:              "id",
	ratedomain.ErrInvalidPercentage:      "commission_percentage",
	jobdomain.ErrInvalidID:               "id",
	jobdomain.ErrInvalidDescription:      "description",
	jobdomain.ErrInvalidDueDate:          "job_due_date",
	jobdomain.ErrInvalidAmount:           "amount",
	jobdomain.ErrInvalidStatus:           "status",
	jobdomain.ErrStaffNotEligible:        "staff_id",
	commission.ErrNegativeAmount:         "amount",
	commission.ErrInvalidPercentage:      "commission_percentage",
	authdomain.ErrWeakPassword:           "password",
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	for sentinel, field := range validationSentinels {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, errorPayload{
				Type:    "validation_error",
				Message: "validation error",
				Errors: []ValidationError{
					{Field: field, Code: sentinel.Error(), Message: sentinel.Error()},
				},
			}
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "authentication required",
		}
	case errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "insufficient permissions",
		}
	case errors.Is(err, ErrTooManyLogins):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many login attempts",
		}
	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, vendordomain.ErrNotFound),
		errors.Is(err, staffdomain.ErrNotFound),
		errors.Is(err, ratedomain.ErrNotFound),
		errors.Is(err, jobdomain.ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	case errors.Is(err, catalogdomain.ErrNameTaken),
		errors.Is(err, staffdomain.ErrEmailTaken),
		errors.Is(err, ratedomain.ErrDuplicateConfig),
		errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "resource already exists",
		}
	}

	// Upstream detail stays in the logs; the client gets a generic message.
	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
