package middleware

import (
	"net/http"
	"strings"

	"github.com/aptivo/backend/internal/dto"
	"github.com/aptivo/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const userContextKey = "auth_user"

// RequireAuth resolves the bearer token through the configured auth backend
// and stores the user on the request context.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}

		user, err := auth.GetSession(token)
		if err != nil {
			log.Debug().Err(err).Msg("Auth: session resolution failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired session"})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authenticated"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient privileges"})
	}
}

// CurrentUser returns the authenticated user placed by RequireAuth.
func CurrentUser(ctx *gin.Context) (*dto.UserDTO, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*dto.UserDTO)
	return user, ok
}
