package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimitMiddleware rejects oversized request bodies before any parsing
// happens. Requests declaring a Content-Length over the limit get the fixed
// 413 envelope; bodies without a declared length are capped by MaxBytesReader
// so a lying client cannot stream past the limit.
func BodyLimitMiddleware(maxSizeMB int) gin.HandlerFunc {
	maxBytes := int64(maxSizeMB) * 1024 * 1024
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"message": "The uploaded file is too large. Maximum file size is 20MB.",
				"error":   "File size exceeds the maximum allowed limit. Please reduce the file size and try again.",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
