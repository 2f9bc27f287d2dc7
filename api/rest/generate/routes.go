package generate

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/auth"
	"codeberg.org/imagica/server/internal/provider"
	"codeberg.org/imagica/server/internal/quota"
)

// registers the image generation route
func RegisterRoutes(router *gin.RouterGroup, generator provider.Generator, quotaCfg quota.Config, stores quota.Provider) {
	router.POST("/generate", auth.IdentityMiddleware(), Handler(generator, quotaCfg, stores))
}
