package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// the password-gate session cookie
	SessionCookieName = "imagica_session"

	// gate sessions last 2 hours
	SessionCookieTTL = 2 * time.Hour
)

// IdentityMiddleware resolves the caller's identity without requiring it.
// A Bearer token (OAuth sign-in) wins over the gate session cookie; either
// way user_id lands in the gin context for downstream handlers.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := bearerClaims(c); claims != nil {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Next()
			return
		}

		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			if claims, err := ValidateJWT(cookie); err == nil {
				c.Set("user_id", claims.UserID)
			}
		}

		c.Next()
	}
}

// RequireIdentity aborts with 401 when no identity could be established
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GateMiddleware is the coarse allow/deny gate for page requests: anything
// without a valid session cookie is redirected to the login page. API routes
// are exempt here because they answer 401 JSON themselves.
func GateMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isGateExempt(path) {
			c.Next()
			return
		}

		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, err := ValidateJWT(cookie); err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

func isGateExempt(path string) bool {
	if path == "/login" || path == "/health" {
		return true
	}

	return strings.HasPrefix(path, "/api/")
}

// extracts user_id from context after IdentityMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")

	if !exists {
		return "", false
	}

	return userID.(string), true
}

// SetSessionCookie attaches the signed gate session cookie to the response
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(SessionCookieTTL/time.Second), "/", "", secure, true)
}

func bearerClaims(c *gin.Context) *Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims, err := ValidateJWT(parts[1])
	if err != nil {
		return nil
	}

	return claims
}
