package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/blog-platform/internal/search"
	"github.com/example/blog-platform/internal/transport/http/middleware"
)

type SearchHandler struct {
	es *search.Elastic
}

func NewSearchHandler(es *search.Elastic) *SearchHandler {
	return &SearchHandler{es: es}
}

// Search runs a full-text query over published posts.
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("q")
	data := gin.H{"User": middleware.UserFrom(c), "Query": q}
	if q != "" && h.es != nil {
		results, err := h.es.SearchPosts(c.Request.Context(), q)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "500.html", nil)
			return
		}
		data["Results"] = results
	}
	c.HTML(http.StatusOK, "search.html", data)
}
