package core

import (
	"context"
	"net"

	"otp/internal/errors"
	"otp/internal/handler"
	"otp/internal/metrics"
	"otp/internal/protocol"
	"otp/internal/retry"
	"otp/internal/statsapi"
	"otp/internal/transport"
	"otp/util"
)

// ServeMode runs an enc or dec service: one listener shared by a fixed
// pool of workers, each serving one session at a time.
type ServeMode struct {
	Address     string // "bind:port"
	Role        protocol.Role
	Workers     int
	Restart     bool // relaunch workers that die on a fatal error
	MaxRestarts int  // per worker slot; 0 = unlimited
	Backoff     *retry.Backoff
	Handler     handler.Handler
	Metrics     *metrics.Collector
	StatsAddr   string // optional HTTP stats endpoint
	Logger      *util.Logger

	// Listener, when set, is used instead of binding Address.
	Listener net.Listener
}

// Run serves until ctx is cancelled or every worker has exited.
func (m *ServeMode) Run(ctx context.Context) error {
	ln := m.Listener
	if ln == nil {
		var err error
		if ln, err = transport.Listen(ctx, m.Address); err != nil {
			return err
		}
	} else {
		context.AfterFunc(ctx, func() { ln.Close() })
	}
	defer ln.Close()

	if m.StatsAddr != "" {
		stats, err := statsapi.Start(ctx, m.StatsAddr, m.Metrics, m.Logger)
		if err != nil {
			return err
		}
		defer stats.Close() //nolint:errcheck
	}

	m.Logger.Info("listening on %s with %d workers", ln.Addr(), m.Workers)

	p := &pool{
		size:        m.Workers,
		role:        m.Role,
		restart:     m.Restart,
		maxRestarts: m.MaxRestarts,
		backoff:     m.Backoff,
		handler:     m.Handler,
		metrics:     m.Metrics,
		logger:      m.Logger,
	}
	err := p.run(ctx, ln)

	m.Logger.Verbose("final stats: %s", m.Metrics.JSON())
	if ctx.Err() != nil {
		m.Logger.Info("shut down")
		return nil
	}
	if err != nil {
		return err
	}
	return errors.New("all workers exited")
}
