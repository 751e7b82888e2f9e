// Package config defines the runtime configuration shared by the otp
// tools (key generator, enc/dec services, enc/dec clients).
package config

import (
	"fmt"
	"time"

	"otp/internal/cipher"
	"otp/internal/errors"
)

// Mode selects which tool a Config drives.
type Mode int

const (
	ModeKeygen Mode = iota
	ModeServe
	ModeClient
)

func (m Mode) String() string {
	switch m {
	case ModeKeygen:
		return "keygen"
	case ModeServe:
		return "server"
	case ModeClient:
		return "client"
	default:
		return "unknown"
	}
}

// Config holds every tuneable for a single tool invocation.
type Config struct {
	Mode      Mode
	Direction cipher.Direction // enc = Forward, dec = Inverse

	// ── Network ──────────────────────────────────────────────────────
	Host        string // client: service host
	Port        int    // client: service port; server: listen port
	BindAddress string // server: listen address ("" = all interfaces)
	Timeout     time.Duration

	// ── Server ───────────────────────────────────────────────────────
	Workers        int
	RestartWorkers bool
	MaxRestarts    int // per worker slot; 0 = unlimited
	MaxMessageSize int
	StatsAddr      string

	// ── Client ───────────────────────────────────────────────────────
	InputPath string
	KeyPath   string

	// ── Keygen ───────────────────────────────────────────────────────
	KeyLength int

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// Default returns a Config populated from defaults.go.
func Default(mode Mode, dir cipher.Direction) *Config {
	return &Config{
		Mode:           mode,
		Direction:      dir,
		Host:           DefaultHost,
		BindAddress:    DefaultBindAddress,
		Workers:        DefaultPoolSize,
		RestartWorkers: true,
		MaxRestarts:    DefaultMaxRestarts,
		MaxMessageSize: DefaultMaxMessageSize,
		Verbose:        DefaultVerbosity,
	}
}

// ToolName returns the executable name for the configured mode and
// direction, e.g. "enc_server".
func (c *Config) ToolName() string {
	if c.Mode == ModeKeygen {
		return "keygen"
	}
	prefix := "enc"
	if c.Direction == cipher.Inverse {
		prefix = "dec"
	}
	return fmt.Sprintf("%s_%s", prefix, c.Mode)
}

// ListenAddress is the address the service binds.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeKeygen:
		if c.KeyLength <= 0 {
			return &errors.ConfigError{Field: "length", Value: c.KeyLength,
				Message: "key length must be a positive integer"}
		}
		return nil

	case ModeServe:
		if err := validPort(c.Port); err != nil {
			return err
		}
		if c.Workers < 1 {
			return &errors.ConfigError{Field: "workers", Value: c.Workers,
				Message: "pool needs at least one worker",
				Hint:    fmt.Sprintf("the default pool size is %d", DefaultPoolSize)}
		}
		if c.MaxRestarts < 0 {
			return &errors.ConfigError{Field: "max-restarts", Value: c.MaxRestarts,
				Message: "must be zero (unlimited) or positive"}
		}

	case ModeClient:
		if err := validPort(c.Port); err != nil {
			return err
		}
		if c.InputPath == "" {
			return &errors.ConfigError{Field: "input", Message: "input file is required"}
		}
		if c.KeyPath == "" {
			return &errors.ConfigError{Field: "key", Message: "key file is required"}
		}
		if c.Host == "" {
			return &errors.ConfigError{Field: "host", Message: "host is required"}
		}

	default:
		return &errors.ConfigError{Field: "mode", Value: int(c.Mode), Message: "unknown mode"}
	}

	if c.Timeout < 0 {
		return &errors.ConfigError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"}
	}
	if c.MaxMessageSize < 0 {
		return &errors.ConfigError{Field: "max-size", Value: c.MaxMessageSize, Message: "must not be negative"}
	}
	return nil
}

func validPort(port int) error {
	if port < 1 || port > 65535 {
		return &errors.ConfigError{Field: "port", Value: port, Message: "out of range 1-65535"}
	}
	return nil
}
