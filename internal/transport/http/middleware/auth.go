package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/service"
	"github.com/example/blog-platform/internal/session"
)

const userKey = "current_user"

// LoginPath is where RequireAuth sends anonymous users.
const LoginPath = "/auth/login/"

// CurrentUser resolves the session cookie into a user on every request.
// Anonymous requests pass through untouched.
func CurrentUser(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err == nil && token != "" {
			user, err := accounts.UserFromSession(c.Request.Context(), token)
			if err == nil && user != nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// RequireAuth redirects anonymous users to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
