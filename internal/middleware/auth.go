package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apconnect/directory-api/internal/handler"
	"github.com/apconnect/directory-api/internal/model"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

// UserResolver turns a bearer token into the signed-in user.
type UserResolver interface {
	GetUser(ctx context.Context, token string) (*model.User, error)
}

type AuthMiddleware struct {
	users UserResolver
}

func NewAuthMiddleware(users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Authenticate resolves the bearer token and stores the user on the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handler.RespondError(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			handler.RespondError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		user, err := m.users.GetUser(c.Request.Context(), parts[1])
		if err != nil {
			handler.RespondError(c, err)
			return
		}

		handler.SetCurrentUser(c, user, parts[1])
		c.Next()
	}
}

// RequireRole rejects signed-in users without one of roles. Must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := handler.MustUser(c)
		if !ok {
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		handler.RespondError(c, apperrors.Forbidden("permission denied"))
	}
}
