package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDailyLimit  = 2
	defaultQuotaWindow = 24 * time.Hour
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	provider := os.Getenv("IMAGE_PROVIDER")
	replicateToken := os.Getenv("REPLICATE_API_TOKEN")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	sitePassword := os.Getenv("SITE_PASSWORD")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	quotaBackend := os.Getenv("QUOTA_BACKEND")
	redisURL := os.Getenv("REDIS_URL")
	environment := os.Getenv("ENVIRONMENT")

	if provider == "" {
		provider = ProviderReplicate
	}

	switch provider {
	case ProviderReplicate:
		if replicateToken == "" {
			return nil, fmt.Errorf("REPLICATE_API_TOKEN environment variable is required")
		}
	case ProviderGemini:
		if geminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
	default:
		return nil, fmt.Errorf("unsupported IMAGE_PROVIDER: %s", provider)
	}

	if sitePassword == "" {
		return nil, fmt.Errorf("SITE_PASSWORD environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if quotaBackend == "" {
		quotaBackend = QuotaBackendCookie
	}

	switch quotaBackend {
	case QuotaBackendCookie, QuotaBackendMemory:
	case QuotaBackendRedis:
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required for the redis quota backend")
		}
	default:
		return nil, fmt.Errorf("unsupported QUOTA_BACKEND: %s", quotaBackend)
	}

	dailyLimit := defaultDailyLimit

	if raw := os.Getenv("DAILY_LIMIT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("DAILY_LIMIT must be a positive integer, got %q", raw)
		}

		dailyLimit = parsed
	}

	if environment == "" {
		environment = "development"
	}

	return &Config{
		Environment:       environment,
		Provider:          provider,
		ReplicateAPIToken: replicateToken,
		GeminiAPIKey:      geminiKey,
		SitePassword:      sitePassword,
		JWTSecret:         jwtSecret,
		SessionSecret:     sessionSecret,
		QuotaBackend:      quotaBackend,
		RedisURL:          redisURL,
		DailyLimit:        dailyLimit,
		QuotaWindow:       defaultQuotaWindow,
	}, nil
}
