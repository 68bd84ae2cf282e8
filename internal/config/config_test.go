package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEngineDefaults(t *testing.T) {
	cfg := LoadEngine()

	assert.Equal(t, 100.0, cfg.DefaultRadiusMeters)
	assert.Equal(t, 70, cfg.ConfidenceThreshold)
	assert.Equal(t, 45*time.Minute, cfg.MinVerificationInterval)
	assert.Equal(t, 120*time.Minute, cfg.MaxVerificationInterval)
	assert.Equal(t, 20, cfg.MaxCheckInsPerDay)
}

func TestLoadEngineOverrides(t *testing.T) {
	t.Setenv("PRESENCE_DEFAULT_RADIUS_METERS", "250")
	t.Setenv("PRESENCE_CONFIDENCE_THRESHOLD", "80")
	t.Setenv("PRESENCE_MIN_INTERVAL_MINUTES", "30")
	t.Setenv("PRESENCE_MAX_INTERVAL_MINUTES", "60")

	cfg := LoadEngine()

	assert.Equal(t, 250.0, cfg.DefaultRadiusMeters)
	assert.Equal(t, 80, cfg.ConfidenceThreshold)
	assert.Equal(t, 30*time.Minute, cfg.MinVerificationInterval)
	assert.Equal(t, 60*time.Minute, cfg.MaxVerificationInterval)
}

func TestLoadEngineIgnoresInvalidValues(t *testing.T) {
	t.Setenv("PRESENCE_CONFIDENCE_THRESHOLD", "not-a-number")
	t.Setenv("PRESENCE_DEFAULT_RADIUS_METERS", "-5")

	cfg := LoadEngine()

	assert.Equal(t, 70, cfg.ConfidenceThreshold)
	assert.Equal(t, 100.0, cfg.DefaultRadiusMeters)
}

func TestLoadEngineClampsInvertedIntervalBounds(t *testing.T) {
	t.Setenv("PRESENCE_MIN_INTERVAL_MINUTES", "90")
	t.Setenv("PRESENCE_MAX_INTERVAL_MINUTES", "60")

	cfg := LoadEngine()

	assert.Equal(t, cfg.MinVerificationInterval, cfg.MaxVerificationInterval)
}
