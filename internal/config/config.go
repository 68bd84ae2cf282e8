package config

import (
	"os"
	"strconv"
	"time"
)

// Engine holds the tunable presence-verification settings. Values come from
// PRESENCE_* environment variables and fall back to the platform defaults.
type Engine struct {
	// Geofence radius applied when a site does not define its own.
	DefaultRadiusMeters float64

	// Facial match confidence below this is treated as not verified.
	ConfidenceThreshold int

	// Bounds for the random re-verification interval.
	MinVerificationInterval time.Duration
	MaxVerificationInterval time.Duration

	// Hard cap on check-ins per employee per day.
	MaxCheckInsPerDay int

	// How long a generated pair code stays claimable.
	PairCodeTTL time.Duration
}

func DefaultEngine() Engine {
	return Engine{
		DefaultRadiusMeters:     100,
		ConfidenceThreshold:     70,
		MinVerificationInterval: 45 * time.Minute,
		MaxVerificationInterval: 120 * time.Minute,
		MaxCheckInsPerDay:       20,
		PairCodeTTL:             2 * time.Minute,
	}
}

// LoadEngine reads PRESENCE_* overrides on top of the defaults.
// Invalid values are ignored rather than failing startup.
func LoadEngine() Engine {
	cfg := DefaultEngine()

	if v, ok := envFloat("PRESENCE_DEFAULT_RADIUS_METERS"); ok && v > 0 {
		cfg.DefaultRadiusMeters = v
	}
	if v, ok := envInt("PRESENCE_CONFIDENCE_THRESHOLD"); ok && v >= 0 && v <= 100 {
		cfg.ConfidenceThreshold = v
	}
	if v, ok := envInt("PRESENCE_MIN_INTERVAL_MINUTES"); ok && v > 0 {
		cfg.MinVerificationInterval = time.Duration(v) * time.Minute
	}
	if v, ok := envInt("PRESENCE_MAX_INTERVAL_MINUTES"); ok && v > 0 {
		cfg.MaxVerificationInterval = time.Duration(v) * time.Minute
	}
	if v, ok := envInt("PRESENCE_MAX_CHECKINS_PER_DAY"); ok && v > 0 {
		cfg.MaxCheckInsPerDay = v
	}
	if v, ok := envInt("PRESENCE_PAIR_CODE_TTL_SECONDS"); ok && v > 0 {
		cfg.PairCodeTTL = time.Duration(v) * time.Second
	}

	if cfg.MaxVerificationInterval < cfg.MinVerificationInterval {
		cfg.MaxVerificationInterval = cfg.MinVerificationInterval
	}

	return cfg
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
