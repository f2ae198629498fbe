package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxRequestBodyBytes bounds a request body after decompression.
const MaxRequestBodyBytes int64 = 1 << 20

// DecompressRequest unwraps gzip encoded request bodies, reading at most
// limit decompressed bytes. Bodies that are not valid gzip are rejected
// with the usual JSON error envelope.
func DecompressRequest(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(strings.ToLower(c.GetHeader("Content-Encoding")), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		defer compressed.Close()
		defer reader.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, reader, limit)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
