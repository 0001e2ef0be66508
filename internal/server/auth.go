package server

import (
	"net/http"
	"strings"
	"time"

	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	if s.loginLimiter != nil {
		allowed, retryAfter, err := s.loginLimiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not lock everyone out.
			s.log.Warn("login rate limiter unavailable", zap.Error(err))
		} else if !allowed {
			if retryAfter > 0 {
				c.Header("Retry-After", retryAfter.Round(time.Second).String())
			}
			AbortWithError(c, ErrTooManyLogins)
			return
		}
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.countLogin("failure")
		AbortWithError(c, err)
		return
	}
	s.countLogin("success")

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	actor, err := s.staffSvc.GetByID(c.Request.Context(), result.UserID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"staff":      actor,
		"expires_at": result.ExpiresAt,
	}})
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			s.log.Warn("logout failed", zap.Error(err))
		}
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}

func (s *Server) handleMe(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": actor})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authsvc.ChangePassword(c.Request.Context(), actor.ID, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "auth.change_password", "staff", actor.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"changed": true}})
}

func (s *Server) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}
