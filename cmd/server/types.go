package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/config"
	"codeberg.org/imagica/server/internal/provider"
	"codeberg.org/imagica/server/internal/quota"
)

// holds all dependencies and state for the API server
type Server struct {
	config      *config.Config
	router      *gin.Engine
	generator   provider.Generator
	quotaCfg    quota.Config
	quotaStores quota.Provider

	// set only for the redis quota backend; closed on shutdown
	redisStore *quota.RedisStore
}
