package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"codeberg.org/imagica/server/internal/config"
	"codeberg.org/imagica/server/internal/logger"
	"codeberg.org/imagica/server/internal/provider"
	"codeberg.org/imagica/server/internal/quota"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	quotaStores, redisStore, err := newQuotaStores(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quota store: %w", err)
	}

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		if redisStore != nil {
			redisStore.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		}

		return nil, fmt.Errorf("failed to initialize image provider: %w", err)
	}

	logger.Info("image provider initialized", "provider", cfg.Provider)
	logger.Info("quota store initialized",
		"backend", cfg.QuotaBackend,
		"daily_limit", cfg.DailyLimit,
		"window", cfg.QuotaWindow,
	)

	router := gin.Default()

	server := &Server{
		config:    cfg,
		router:    router,
		generator: generator,
		quotaCfg: quota.Config{
			DailyLimit: cfg.DailyLimit,
			Window:     cfg.QuotaWindow,
		},
		quotaStores: quotaStores,
		redisStore:  redisStore,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// selects the quota storage backend; cookie is the default because it keeps
// the server stateless
func newQuotaStores(cfg *config.Config) (quota.Provider, *quota.RedisStore, error) {
	switch cfg.QuotaBackend {
	case config.QuotaBackendCookie:
		secure := cfg.Environment == "production"
		return quota.NewCookieStore([]byte(cfg.SessionSecret), quota.DefaultRetention, secure), nil, nil

	case config.QuotaBackendMemory:
		return quota.NewMemoryStore(), nil, nil

	case config.QuotaBackendRedis:
		store, err := quota.NewRedisStoreFromURL(cfg.RedisURL, quota.DefaultRetention)
		if err != nil {
			return nil, nil, err
		}

		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unsupported quota backend: %s", cfg.QuotaBackend)
	}
}

// selects the image generation provider
func newGenerator(ctx context.Context, cfg *config.Config) (provider.Generator, error) {
	switch cfg.Provider {
	case config.ProviderReplicate:
		return provider.NewReplicateGenerator(provider.ReplicateConfig{
			APIToken: cfg.ReplicateAPIToken,
		}), nil

	case config.ProviderGemini:
		return provider.NewGeminiGenerator(ctx, provider.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
		})

	default:
		return nil, fmt.Errorf("unsupported image provider: %s", cfg.Provider)
	}
}
