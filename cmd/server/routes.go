package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	restauth "codeberg.org/imagica/server/api/rest/auth"
	"codeberg.org/imagica/server/api/rest/generate"
	"codeberg.org/imagica/server/api/rest/health"
	restquota "codeberg.org/imagica/server/api/rest/quota"
	"codeberg.org/imagica/server/internal/auth"
)

// coarse per-IP request limit for the whole API, separate from the
// per-user daily generation quota
const requestsPerMinute = 60

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(corsMiddleware())
	router.Use(requestRateLimiter())
	router.Use(auth.GateMiddleware())

	router.GET("/health", health.Handler)
	router.GET("/login", LoginPageHandler())

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		restauth.RegisterRoutes(v1, server.config)
		restquota.RegisterRoutes(v1, server.quotaCfg, server.quotaStores)
		generate.RegisterRoutes(v1, server.generator, server.quotaCfg, server.quotaStores)
	}
}

func corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = false
	corsConfig.AllowOriginFunc = func(_ string) bool { return true }
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Cache-Control"}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}

func requestRateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  requestsPerMinute,
	}

	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
