package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8010, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.FeedEnabled)
	assert.Equal(t, 2*time.Second, cfg.FeedInterval)
	assert.Equal(t, 360.0, cfg.Viewport.DefaultHeight)
	assert.Equal(t, 200.0, cfg.Viewport.MinHeight)
	assert.Equal(t, 800.0, cfg.Viewport.MaxHeight)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOTBOARD_PORT", "9001")
	t.Setenv("BOTBOARD_FEED_INTERVAL", "500ms")
	t.Setenv("BOTBOARD_DEFAULT_HEIGHT", "400")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.FeedInterval)
	assert.Equal(t, 400.0, cfg.Viewport.DefaultHeight)
}

func TestLoad_InvalidBounds(t *testing.T) {
	t.Setenv("BOTBOARD_MAX_HEIGHT", "100") // below min height

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DefaultHeightOutsideBounds(t *testing.T) {
	t.Setenv("BOTBOARD_DEFAULT_HEIGHT", "1000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_FeedIntervalTooSmall(t *testing.T) {
	t.Setenv("BOTBOARD_FEED_INTERVAL", "10ms")

	_, err := Load()
	assert.Error(t, err)
}
