package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/config"
	"github.com/example/blog-platform/internal/service"
	"github.com/example/blog-platform/internal/transport/http/middleware"
)

type PostHandler struct {
	cfg      *config.Config
	posts    *service.PostService
	comments *service.CommentService
}

func NewPostHandler(cfg *config.Config, posts *service.PostService, comments *service.CommentService) *PostHandler {
	return &PostHandler{cfg: cfg, posts: posts, comments: comments}
}

// Index is the public feed.
func (h *PostHandler) Index(c *gin.Context) {
	feed, err := h.posts.Feed(c.Request.Context(), pageParam(c))
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":  middleware.UserFrom(c),
		"Posts": feed.Posts,
		"Page":  feed.Page,
	})
}

// Detail shows one publicly visible post with its comments and a blank comment
// form. Non-visible posts 404 for everyone, the author included.
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	detail, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	c.HTML(http.StatusOK, "detail.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Post":     detail.Post,
		"Comments": detail.Comments,
	})
}

// Category lists the published posts of a published category.
func (h *PostHandler) Category(c *gin.Context) {
	feed, err := h.posts.CategoryFeed(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	c.HTML(http.StatusOK, "category.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Category": feed.Category,
		"Posts":    feed.Posts,
		"Page":     feed.Page,
	})
}

func (h *PostHandler) CreateForm(c *gin.Context) {
	h.renderPostForm(c, gin.H{})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.UserFrom(c)
	in := parsePostInput(c)
	if _, err := h.posts.Create(c.Request.Context(), user, in); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.renderPostForm(c, gin.H{"Error": err.Error(), "Input": in})
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

func (h *PostHandler) EditForm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	post, err := h.posts.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	user := middleware.UserFrom(c)
	if post.AuthorID != user.ID && !h.cfg.LegacyAuthorBypass {
		c.Redirect(http.StatusFound, postDetailPath(id))
		return
	}
	h.renderPostForm(c, gin.H{"Post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	user := middleware.UserFrom(c)
	in := parsePostInput(c)
	_, err := h.posts.Update(c.Request.Context(), user.ID, id, in)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, postDetailPath(id))
	case errors.Is(err, service.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, service.ErrNotAuthor):
		c.Redirect(http.StatusFound, postDetailPath(id))
	case errors.Is(err, service.ErrInvalidInput):
		h.renderPostForm(c, gin.H{"Error": err.Error(), "Input": in})
	default:
		c.HTML(http.StatusInternalServerError, "500.html", nil)
	}
}

func (h *PostHandler) DeleteForm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	post, err := h.posts.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	user := middleware.UserFrom(c)
	if post.AuthorID != user.ID && !h.cfg.LegacyAuthorBypass {
		c.Redirect(http.StatusFound, profilePath(user.Username))
		return
	}
	c.HTML(http.StatusOK, "post_delete.html", gin.H{"User": user, "Post": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	user := middleware.UserFrom(c)
	err := h.posts.Delete(c.Request.Context(), user.ID, id)
	switch {
	case err == nil, errors.Is(err, service.ErrNotAuthor):
		// mismatched actors land on their own profile either way
		c.Redirect(http.StatusFound, profilePath(user.Username))
	case errors.Is(err, service.ErrNotFound):
		renderNotFound(c)
	default:
		c.HTML(http.StatusInternalServerError, "500.html", nil)
	}
}

func (h *PostHandler) renderPostForm(c *gin.Context, data gin.H) {
	categories, locations, err := h.posts.FormOptions(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}
	data["User"] = middleware.UserFrom(c)
	data["Categories"] = categories
	data["Locations"] = locations
	c.HTML(http.StatusOK, "post_form.html", data)
}

func parsePostInput(c *gin.Context) service.PostInput {
	in := service.PostInput{
		Title:       c.PostForm("title"),
		Text:        c.PostForm("text"),
		IsPublished: c.PostForm("is_published") != "",
	}
	if v := c.PostForm("pub_date"); v != "" {
		if t, err := time.Parse("2006-01-02T15:04", v); err == nil {
			in.PubDate = t
		}
	}
	if v := c.PostForm("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
			u := uint(id)
			in.CategoryID = &u
		}
	}
	if v := c.PostForm("location_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
			u := uint(id)
			in.LocationID = &u
		}
	}
	return in
}
