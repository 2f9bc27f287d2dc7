package auth

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/auth"
	"codeberg.org/imagica/server/internal/config"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config) {
	router.POST("/session", SessionHandler(cfg))

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(cfg))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.IdentityMiddleware(), auth.RequireIdentity(), MeHandler())
	}
}
