package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/dto"
)

// MaxInflatedBody bounds a decompressed request body.
const MaxInflatedBody = 4 << 20

// DecompressRequest inflates gzip encoded request bodies up to MaxInflatedBody bytes.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gzipEncoded(c.GetHeader("Content-Encoding")) {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed gzip body"})
			return
		}
		defer compressed.Close()
		defer reader.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, reader, MaxInflatedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func gzipEncoded(header string) bool {
	for _, token := range strings.Split(header, ",") {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "gzip", "x-gzip":
			return true
		}
	}
	return false
}
