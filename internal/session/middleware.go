package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/pkg/apperrors"
	"github.com/RamirezDiego7/ligatec/pkg/responses"
)

const resolutionKey = "session_resolution"

// Resolve runs the resolver for the authenticated request and stores the
// Resolution in the context. Must run after middleware.Auth.
func Resolve(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		res, err := resolver.Resolve(userID)
		if err != nil {
			// Distinct from unauthenticated: do not bounce to login.
			responses.SendError(c, http.StatusInternalServerError, "Could not resolve session, please retry")
			return
		}
		if res.Outcome == Unauthenticated {
			responses.SendError(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		c.Set(resolutionKey, res)
		c.Next()
	}
}

// FromContext returns the Resolution stored by Resolve.
func FromContext(c *gin.Context) (Resolution, bool) {
	v, exists := c.Get(resolutionKey)
	if !exists {
		return Resolution{}, false
	}
	res, ok := v.(Resolution)
	return res, ok
}

// RequireCompleteProfile blocks role-gated routes until the user has
// supplied their enrollment id.
func RequireCompleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := FromContext(c)
		if !ok {
			responses.SendError(c, http.StatusInternalServerError, "Session not resolved")
			return
		}
		if res.Outcome == IncompleteProfile {
			responses.SendError(c, http.StatusPreconditionRequired, apperrors.ErrProfileIncomplete.Error()+": set your matricula before using this feature")
			return
		}
		c.Next()
	}
}

// RequireRole allows the request through only when the resolved role matches
// one of requiredRoles. A mismatch ends in a denial, never in partially
// rendered content.
func RequireRole(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := FromContext(c)
		if !ok {
			responses.SendError(c, http.StatusInternalServerError, "Session not resolved")
			return
		}
		if res.Outcome != WithRole {
			responses.SendError(c, http.StatusPreconditionRequired, apperrors.ErrProfileIncomplete.Error()+": set your matricula before using this feature")
			return
		}

		for _, required := range requiredRoles {
			if strings.EqualFold(res.Role, required) {
				c.Next()
				return
			}
		}
		responses.Forbidden(c, "You don't have permission to access this resource")
	}
}

// RequireAdmin is a convenience middleware for admin-only access.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("Admin")
}
