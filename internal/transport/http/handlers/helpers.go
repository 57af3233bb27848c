package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postDetailPath(id uint) string { return fmt.Sprintf("/posts/%d/", id) }

func profilePath(username string) string { return "/profile/" + username + "/" }

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", nil)
	c.Abort()
}
