package server

import (
	"github.com/framehaus/studioflow/internal/authorization"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	"github.com/gin-gonic/gin"
)

const (
	ctxKeyActor   = "actor"
	ctxKeySession = "session_token"
)

// SessionAuthRequired authenticates the session cookie and loads the staff
// profile behind it into the request context.
func (s *Server) SessionAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, ErrUnauthorized)
			return
		}

		actor, err := s.staffSvc.GetByID(c.Request.Context(), sess.UserID.String())
		if err != nil {
			// An identity can outlive its profile only transiently, mid
			// saga; treat it as not logged in.
			s.sessions.Clear(c)
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(ctxKeyActor, actor)
		c.Set(ctxKeySession, token)
		c.Next()
	}
}

// RequireRole allows only the listed roles past this point.
func (s *Server) RequireRole(roles ...staffdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, authorization.ErrForbidden)
	}
}

// authorize enforces a casbin policy for the actor's role.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), actor.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (staffdomain.Staff, bool) {
	value, ok := c.Get(ctxKeyActor)
	if !ok {
		return staffdomain.Staff{}, false
	}
	actor, ok := value.(staffdomain.Staff)
	return actor, ok
}

func sessionTokenFrom(c *gin.Context) (string, bool) {
	value, ok := c.Get(ctxKeySession)
	if !ok {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
