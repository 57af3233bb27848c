package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/service"
	"github.com/example/blog-platform/internal/session"
)

type AuthHandler struct {
	accounts *service.AccountService
	ttlSec   int
}

func NewAuthHandler(accounts *service.AccountService, ttlSec int) *AuthHandler {
	return &AuthHandler{accounts: accounts, ttlSec: ttlSec}
}

func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	user, token, err := h.accounts.Signup(c.Request.Context(),
		c.PostForm("username"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.HTML(http.StatusOK, "signup.html", gin.H{"Error": err.Error()})
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	token, err := h.accounts.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.HTML(http.StatusOK, "login.html", gin.H{"Error": "invalid credentials"})
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		_ = h.accounts.Logout(c.Request.Context(), token)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(session.CookieName, token, h.ttlSec, "/", "", false, true)
}
