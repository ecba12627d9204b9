package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxDecompressedBody bounds gzip request bodies. Admin payloads are tiny.
const maxDecompressedBody = 1 << 20

// DecompressRequest inflates gzip encoded request bodies.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		original := c.Request.Body
		reader, err := gzip.NewReader(original)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer original.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(reader), maxDecompressedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
