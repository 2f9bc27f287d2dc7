package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"codeberg.org/imagica/server/internal/auth"
	"codeberg.org/imagica/server/internal/config"
	"codeberg.org/imagica/server/internal/errors"
)

var validProviders = []string{"google", "github"}

// SessionHandler godoc
// @Summary Establish a gate session
// @Description Exchange the site password for a signed httpOnly session cookie valid 2 hours
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/session [post]
func SessionHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SessionRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.Unauthorized(c, "invalid password")
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.SitePassword)) != 1 {
			errors.Unauthorized(c, "invalid password")
			return
		}

		visitorID, err := auth.GenerateVisitorID()
		if err != nil {
			errors.InternalError(c, "failed to establish session", err)
			return
		}

		token, err := auth.GenerateJWT(visitorID, "", "", auth.SessionCookieTTL)
		if err != nil {
			errors.InternalError(c, "failed to establish session", err)
			return
		}

		auth.SetSessionCookie(c, token, cfg.Environment == "production")

		c.JSON(http.StatusOK, SessionResponse{Success: true})
	}
}

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin OAuth authentication flow with specified provider (google, github)
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider} [get]
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !isValidProvider(provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description OAuth provider callback. Returns the identity token used for quota accounting
// @Tags auth
// @Produce json
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 200 {object} AuthResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider}/callback [get]
func CallbackHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			errors.InternalError(c, "authentication failed", err)
			return
		}

		// provider-scoped ID keys quota accounting
		userID := gothUser.Provider + "_" + gothUser.UserID

		token, err := auth.GenerateJWT(userID, gothUser.Provider, gothUser.Email, 0)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		// a signed-in user passes the page gate without the site password
		gateToken, err := auth.GenerateJWT(userID, gothUser.Provider, gothUser.Email, auth.SessionCookieTTL)
		if err != nil {
			errors.InternalError(c, "failed to establish session", err)
			return
		}

		auth.SetSessionCookie(c, gateToken, cfg.Environment == "production")

		c.JSON(http.StatusOK, AuthResponse{
			UserID: userID,
			Email:  gothUser.Email,
			Token:  token,
		})
	}
}

// LogoutHandler godoc
// @Summary Log out
// @Description Clears the gate session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/v1/auth/logout [post]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
	}
}

// MeHandler godoc
// @Summary Get current identity
// @Description Returns the identity attached to the request
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		c.JSON(http.StatusOK, MeResponse{
			UserID: userID,
			Email:  c.GetString("user_email"),
		})
	}
}

func isValidProvider(provider string) bool {
	for _, valid := range validProviders {
		if provider == valid {
			return true
		}
	}

	return false
}
