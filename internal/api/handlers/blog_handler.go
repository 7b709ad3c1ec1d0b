package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ianjohndal5/Rental/internal/services"
)

// BlogHandler handles the blog article endpoints, also served under /news.
type BlogHandler struct {
	blogService services.IBlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogService services.IBlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListBlogs handles GET /api/blogs and GET /api/news. Reads return the bare
// array; the envelope is reserved for error paths.
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.blogService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve blogs",
		})
		return
	}

	c.JSON(http.StatusOK, blogs)
}

// GetBlogByID handles GET /api/blogs/:id and GET /api/news/:id
func (h *BlogHandler) GetBlogByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Blog not found",
		})
		return
	}

	blog, err := h.blogService.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Blog not found",
			})
		} else {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to retrieve blog",
			})
		}
		return
	}

	c.JSON(http.StatusOK, blog)
}
