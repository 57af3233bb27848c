package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/service"
	"github.com/example/blog-platform/internal/transport/http/middleware"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// View shows a profile and its posts. Owners see all of their posts including
// drafts, everyone else only the publicly visible ones.
func (h *ProfileHandler) View(c *gin.Context) {
	owner, err := h.profiles.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	var viewerID uint
	if viewer := middleware.UserFrom(c); viewer != nil {
		viewerID = viewer.ID
	}
	page, err := h.profiles.Posts(c.Request.Context(), owner, viewerID, pageParam(c))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":    middleware.UserFrom(c),
		"Owner":   owner,
		"Posts":   page.Posts,
		"Page":    page.Page,
		"IsOwner": viewerID == owner.ID,
	})
}

func (h *ProfileHandler) EditForm(c *gin.Context) {
	c.HTML(http.StatusOK, "profile_form.html", gin.H{"User": middleware.UserFrom(c)})
}

// Edit always mutates the authenticated user, never anyone named in the request.
func (h *ProfileHandler) Edit(c *gin.Context) {
	user := middleware.UserFrom(c)
	in := service.ProfileInput{
		Email:     c.PostForm("email"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	if err := h.profiles.UpdateSelf(c.Request.Context(), user, in); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.HTML(http.StatusOK, "profile_form.html", gin.H{
				"User":  user,
				"Error": err.Error(),
				"Input": in,
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	c.Redirect(http.StatusFound, profilePath(user.Username))
}
