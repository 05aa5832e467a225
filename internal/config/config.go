package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/justjobs360/fileconverter/internal/logging"
)

const (
	// DefaultMaxUploadBytes is the request-body ceiling for the server
	// executors: 4.5MB, matching the hosting platform's limit.
	DefaultMaxUploadBytes = 4608 * 1024

	// DefaultMediaServerMaxBytes is the threshold above which media
	// uploads bypass the server path entirely.
	DefaultMediaServerMaxBytes = 4 * 1024 * 1024
)

// Config holds all application configuration.
type Config struct {
	Port        string
	MetricsPort string

	// AppEnv controls diagnostic verbosity; error details are only
	// surfaced to clients outside "production".
	AppEnv string

	// AllowedOrigins configures CORS for the API surface.
	AllowedOrigins []string

	MaxUploadBytes      int64
	MediaServerMaxBytes int64

	// EngineEnabled gates the in-process ffmpeg engine fallback.
	EngineEnabled bool

	MetricsEnabled  bool
	LogHealthChecks bool
}

// IsProduction reports whether error details should be withheld.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration from environment variables, logging every
// effective value the way the rest of startup does.
func Load() (*Config, error) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		MetricsPort:         getEnv("METRICS_PORT", "9090"),
		AppEnv:              getEnv("APP_ENV", "development"),
		AllowedOrigins:      splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		MaxUploadBytes:      getEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		MediaServerMaxBytes: getEnvInt64("MEDIA_SERVER_MAX_BYTES", DefaultMediaServerMaxBytes),
		EngineEnabled:       getEnvBool("ENGINE_ENABLED", true),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
		LogHealthChecks:     getEnvBool("LOG_HEALTH_CHECKS", true),
	}

	logging.Info("  PORT:                   %s", cfg.Port)
	logging.Info("  METRICS_PORT:           %s", cfg.MetricsPort)
	logging.Info("  METRICS_ENABLED:        %v", cfg.MetricsEnabled)
	logging.Info("  APP_ENV:                %s", cfg.AppEnv)
	logging.Info("  ALLOWED_ORIGINS:        %s", strings.Join(cfg.AllowedOrigins, ","))
	logging.Info("  MAX_UPLOAD_BYTES:       %d", cfg.MaxUploadBytes)
	logging.Info("  MEDIA_SERVER_MAX_BYTES: %d", cfg.MediaServerMaxBytes)
	logging.Info("  ENGINE_ENABLED:         %v", cfg.EngineEnabled)
	logging.Info("  LOG_HEALTH_CHECKS:      %v", cfg.LogHealthChecks)
	logging.Info("  LOG_LEVEL:              %s", logging.GetLevel())

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.MediaServerMaxBytes <= 0 {
		return fmt.Errorf("MEDIA_SERVER_MAX_BYTES must be positive, got %d", c.MediaServerMaxBytes)
	}
	if c.MediaServerMaxBytes > c.MaxUploadBytes {
		return fmt.Errorf("MEDIA_SERVER_MAX_BYTES (%d) must not exceed MAX_UPLOAD_BYTES (%d)",
			c.MediaServerMaxBytes, c.MaxUploadBytes)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must not be empty")
	}
	return nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
