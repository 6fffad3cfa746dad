package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/apconnect/directory-api/internal/model"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

const (
	userKey  = "user"
	tokenKey = "access_token"
)

// SetCurrentUser stores the authenticated user and their bearer token on the request.
func SetCurrentUser(c *gin.Context, user *model.User, token string) {
	c.Set(userKey, user)
	c.Set(tokenKey, token)
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// MustUser returns the authenticated user or writes a 401 and returns false.
func MustUser(c *gin.Context) (*model.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		RespondError(c, apperrors.Unauthorized(""))
		return nil, false
	}
	return user, true
}

func AccessToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
