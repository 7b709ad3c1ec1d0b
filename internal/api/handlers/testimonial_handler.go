package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ianjohndal5/Rental/internal/services"
)

// TestimonialHandler handles the public testimonial endpoint.
type TestimonialHandler struct {
	testimonialService services.ITestimonialService
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(testimonialService services.ITestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

// ListTestimonials handles GET /api/testimonials
func (h *TestimonialHandler) ListTestimonials(c *gin.Context) {
	testimonials, err := h.testimonialService.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to retrieve testimonials",
		})
		return
	}

	c.JSON(http.StatusOK, testimonials)
}
