package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the OTP_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("OTP_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("OTP_BIND"); v != "" {
		cfg.BindAddress = v
	}
	if v := envInt("OTP_TIMEOUT"); v > 0 {
		cfg.Timeout = secondsDuration(v)
	}

	// Server
	if v := envInt("OTP_WORKERS"); v > 0 {
		cfg.Workers = v
	}
	if envBool("OTP_NO_RESTART") {
		cfg.RestartWorkers = false
	}
	if v := envInt("OTP_MAX_RESTARTS"); v > 0 {
		cfg.MaxRestarts = v
	}
	if v := envInt("OTP_MAX_SIZE"); v > 0 {
		cfg.MaxMessageSize = v
	}
	if v := os.Getenv("OTP_STATS_ADDR"); v != "" {
		cfg.StatsAddr = v
	}

	// Output
	if v := envInt("OTP_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
