package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/jsersan/ecommerce-backend-pdf/internal/pkg/auth"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "shop_token"
)

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// extractToken prefers a bearer Authorization header over the session cookie.
func extractToken(c *gin.Context) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if found && strings.EqualFold(scheme, "bearer") {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie hands the issued token back as an HttpOnly cookie and an
// Authorization header. The cookie is marked Secure on TLS connections.
func SetAuthCookie(c *gin.Context, token string) {
	secure := c.Request != nil && c.Request.TLS != nil
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 0, "/", "", secure, true)
	c.Header("Authorization", "Bearer "+token)
}
