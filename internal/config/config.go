// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	LogLevel     string
	DevMode      bool
	FeedEnabled  bool          // Start the mock PnL feed on boot
	FeedInterval time.Duration // Cadence of mock history appends
	Viewport     ViewportConfig
}

// ViewportConfig holds chart viewport bounds and defaults.
// These mirror the client-side resize constraints so the server-side
// controller clamps to the same range the UI advertises.
type ViewportConfig struct {
	MinHeight     float64
	MaxHeight     float64
	MinWidth      float64
	DefaultHeight float64
	DefaultWidth  float64 // Used when width is on auto
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnvAsInt("BOTBOARD_PORT", 8010),
		LogLevel:     getEnv("BOTBOARD_LOG_LEVEL", "info"),
		DevMode:      getEnvAsBool("BOTBOARD_DEV_MODE", false),
		FeedEnabled:  getEnvAsBool("BOTBOARD_FEED_ENABLED", true),
		FeedInterval: getEnvAsDuration("BOTBOARD_FEED_INTERVAL", 2*time.Second),
		Viewport: ViewportConfig{
			MinHeight:     getEnvAsFloat("BOTBOARD_MIN_HEIGHT", 200),
			MaxHeight:     getEnvAsFloat("BOTBOARD_MAX_HEIGHT", 800),
			MinWidth:      getEnvAsFloat("BOTBOARD_MIN_WIDTH", 320),
			DefaultHeight: getEnvAsFloat("BOTBOARD_DEFAULT_HEIGHT", 360),
			DefaultWidth:  getEnvAsFloat("BOTBOARD_DEFAULT_WIDTH", 720),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is internally consistent
func (c *Config) Validate() error {
	if c.Viewport.MinHeight <= 0 || c.Viewport.MaxHeight <= c.Viewport.MinHeight {
		return fmt.Errorf("invalid viewport height bounds: min=%.0f max=%.0f",
			c.Viewport.MinHeight, c.Viewport.MaxHeight)
	}
	if c.Viewport.DefaultHeight < c.Viewport.MinHeight || c.Viewport.DefaultHeight > c.Viewport.MaxHeight {
		return fmt.Errorf("default height %.0f outside [%.0f, %.0f]",
			c.Viewport.DefaultHeight, c.Viewport.MinHeight, c.Viewport.MaxHeight)
	}
	if c.FeedInterval < 100*time.Millisecond {
		return fmt.Errorf("feed interval %s too small (min 100ms)", c.FeedInterval)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
