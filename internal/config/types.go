package config

import "time"

// provider backends for image generation
const (
	ProviderReplicate = "replicate"
	ProviderGemini    = "gemini"
)

// quota storage backends
const (
	QuotaBackendCookie = "cookie"
	QuotaBackendMemory = "memory"
	QuotaBackendRedis  = "redis"
)

type Config struct {
	Environment string

	// image generation provider
	Provider          string
	ReplicateAPIToken string
	GeminiAPIKey      string

	// site access gate and identity
	SitePassword  string
	JWTSecret     string
	SessionSecret string

	// per-user generation quota
	QuotaBackend string
	RedisURL     string
	DailyLimit   int
	QuotaWindow  time.Duration
}
