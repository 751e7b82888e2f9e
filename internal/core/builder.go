package core

import (
	"otp/config"
	"otp/internal/errors"
	"otp/internal/handler"
	"otp/internal/metrics"
	"otp/internal/protocol"
	"otp/internal/retry"
	"otp/internal/transport"
	"otp/util"
)

// Build constructs the Mode for cfg.  cfg is expected to have passed
// Validate.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	switch cfg.Mode {
	case config.ModeKeygen:
		return &KeygenMode{Length: cfg.KeyLength}, nil
	case config.ModeServe:
		return buildServe(cfg, logger), nil
	case config.ModeClient:
		return buildClient(cfg, logger), nil
	default:
		return nil, &errors.ConfigError{Field: "mode", Value: int(cfg.Mode), Message: "unknown mode"}
	}
}

// ── mode builders ────────────────────────────────────────────────────

func buildServe(cfg *config.Config, logger *util.Logger) *ServeMode {
	m := metrics.New()
	return &ServeMode{
		Address:     cfg.ListenAddress(),
		Role:        protocol.RoleFor(cfg.Direction),
		Workers:     cfg.Workers,
		Restart:     cfg.RestartWorkers,
		MaxRestarts: cfg.MaxRestarts,
		Backoff: &retry.Backoff{
			InitialDelay: config.DefaultRestartDelay,
			MaxDelay:     config.DefaultMaxRestartDelay,
			Multiplier:   2.0,
			Jitter:       true,
		},
		Handler: &handler.Cipher{
			MaxSize: cfg.MaxMessageSize,
			Timeout: cfg.Timeout,
			Metrics: m,
		},
		Metrics:   m,
		StatsAddr: cfg.StatsAddr,
		Logger:    logger.Named(cfg.ToolName()),
	}
}

func buildClient(cfg *config.Config, logger *util.Logger) *ClientMode {
	dialTimeout := cfg.Timeout
	if dialTimeout == 0 {
		dialTimeout = config.DefaultDialTimeout
	}
	return &ClientMode{
		Dialer:    &transport.TCPDialer{Timeout: dialTimeout},
		Address:   util.FormatAddr(cfg.Host, cfg.Port),
		Role:      protocol.RoleFor(cfg.Direction),
		InputPath: cfg.InputPath,
		KeyPath:   cfg.KeyPath,
		Timeout:   cfg.Timeout,
		Logger:    logger.Named(cfg.ToolName()),
	}
}
