package quota

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/auth"
	"codeberg.org/imagica/server/internal/quota"
)

// registers quota inspection and consumption routes
func RegisterRoutes(router *gin.RouterGroup, cfg quota.Config, stores quota.Provider) {
	router.GET("/quota", auth.IdentityMiddleware(), GetHandler(cfg, stores))
	router.POST("/quota", auth.IdentityMiddleware(), ConsumeHandler(cfg, stores))
}
