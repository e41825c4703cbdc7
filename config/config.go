package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"squares-pool/utils/logger"
)

const (
	defaultPort              = "5200"
	defaultAllowedOrigins    = "http://localhost:3000"
	defaultHeartbeatInterval = 15 * time.Second
)

// R2Config holds the optional Cloudflare R2 results archive settings.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	CDNBaseURL      string
}

// Enabled reports whether enough settings are present to upload archives.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.Bucket != ""
}

// Config is the service configuration read from the environment.
type Config struct {
	DatabaseURL       string
	Port              string
	AllowedOrigins    []string
	LogLevel          string
	HeartbeatInterval time.Duration
	R2                R2Config
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables directly")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:       strings.TrimSpace(getenv("DATABASE_URL")),
		Port:              strings.TrimSpace(getenv("PORT")),
		LogLevel:          strings.TrimSpace(getenv("LOG_LEVEL")),
		HeartbeatInterval: defaultHeartbeatInterval,
		R2: R2Config{
			AccountID:       getenv("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          getenv("R2_BUCKET_NAME"),
			CDNBaseURL:      getenv("CDN_BASE_URL"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	origins := getenv("ALLOWED_ORIGINS")
	if origins == "" {
		logger.Warnf("ALLOWED_ORIGINS not set, using default: %s", defaultAllowedOrigins)
		origins = defaultAllowedOrigins
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	if raw := strings.TrimSpace(getenv("HEARTBEAT_INTERVAL")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid HEARTBEAT_INTERVAL %q", raw)
		}
		cfg.HeartbeatInterval = d
	}

	return cfg, nil
}
