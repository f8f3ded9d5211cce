package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds client configuration loaded from environment.
type Config struct {
	API     APIConfig
	Auth    AuthConfig
	Redis   RedisConfig
	Advisor AdvisorConfig
}

// APIConfig holds the remote Q&A API settings.
type APIConfig struct {
	BaseURL    string
	TimeoutSec int
}

// AuthConfig holds the bearer credential. Token issuance and refresh are
// outside this client; it only attaches what it is given.
type AuthConfig struct {
	Token string
}

// RedisConfig holds the optional shared session store. Empty Addr keeps
// session state in-process.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	SessionTTLSec int
}

// AdvisorConfig tunes the duplicate-question advisor.
type AdvisorConfig struct {
	MinTitleLen int
	QuietMs     int
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	timeout, _ := strconv.Atoi(getEnv("API_TIMEOUT_SEC", "30"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_SEC", "86400"))
	minTitleLen, _ := strconv.Atoi(getEnv("ADVISOR_MIN_TITLE_LEN", "10"))
	quietMs, _ := strconv.Atoi(getEnv("ADVISOR_QUIET_MS", "500"))

	cfg := &Config{
		API: APIConfig{
			BaseURL:    getEnv("API_BASE_URL", ""),
			TimeoutSec: timeout,
		},
		Auth: AuthConfig{
			Token: getEnv("API_TOKEN", ""),
		},
		Redis: RedisConfig{
			Addr:          getEnv("REDIS_ADDR", ""),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            redisDB,
			SessionTTLSec: sessionTTL,
		},
		Advisor: AdvisorConfig{
			MinTitleLen: minTitleLen,
			QuietMs:     quietMs,
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
