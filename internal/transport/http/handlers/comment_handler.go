package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/models"
	"github.com/example/blog-platform/internal/service"
	"github.com/example/blog-platform/internal/transport/http/middleware"
)

type CommentHandler struct {
	comments *service.CommentService
	posts    *service.PostService
}

func NewCommentHandler(comments *service.CommentService, posts *service.PostService) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts}
}

// Add attaches a comment to a post and always bounces back to the detail page.
// Invalid submissions are dropped without feedback.
func (h *CommentHandler) Add(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	user := middleware.UserFrom(c)
	err := h.comments.Add(c.Request.Context(), user.ID, postID, c.PostForm("text"))
	if errors.Is(err, service.ErrNotFound) {
		renderNotFound(c)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(postID))
}

func (h *CommentHandler) EditForm(c *gin.Context) {
	postID, comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "comment_form.html", gin.H{
		"User":    middleware.UserFrom(c),
		"PostID":  postID,
		"Comment": comment,
	})
}

// Edit saves the new text and redirects to the post either way; validation
// failures are not surfaced.
func (h *CommentHandler) Edit(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		renderNotFound(c)
		return
	}
	user := middleware.UserFrom(c)
	err := h.comments.Edit(c.Request.Context(), user.ID, commentID, c.PostForm("text"))
	if errors.Is(err, service.ErrNotFound) {
		renderNotFound(c)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(postID))
}

func (h *CommentHandler) DeleteForm(c *gin.Context) {
	postID, comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "comment_delete.html", gin.H{
		"User":    middleware.UserFrom(c),
		"PostID":  postID,
		"Comment": comment,
	})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		renderNotFound(c)
		return
	}
	user := middleware.UserFrom(c)
	err := h.comments.Delete(c.Request.Context(), user.ID, commentID)
	if errors.Is(err, service.ErrNotFound) {
		renderNotFound(c)
		return
	}
	c.Redirect(http.StatusFound, postDetailPath(postID))
}

// loadOwnComment resolves the route's comment and short-circuits to the post
// detail page when the acting user is not its author.
func (h *CommentHandler) loadOwnComment(c *gin.Context) (uint, *models.Comment, bool) {
	postID, ok := idParam(c, "id")
	if !ok {
		renderNotFound(c)
		return 0, nil, false
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		renderNotFound(c)
		return 0, nil, false
	}
	comment, err := h.comments.ByID(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return 0, nil, false
		}
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return 0, nil, false
	}
	user := middleware.UserFrom(c)
	if comment.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postDetailPath(postID))
		return 0, nil, false
	}
	return postID, comment, true
}
