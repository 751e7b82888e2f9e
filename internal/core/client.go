package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"otp/internal/errors"
	"otp/internal/input"
	"otp/internal/protocol"
	"otp/internal/transport"
	"otp/util"
)

// ClientMode sends one message and key to an enc or dec service and
// streams the result to Stdout.
type ClientMode struct {
	Dialer    transport.Dialer
	Address   string
	Role      protocol.Role
	InputPath string
	KeyPath   string
	Timeout   time.Duration // whole-exchange deadline; 0 = none
	Logger    *util.Logger

	// Stdout defaults to os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdout io.Writer
}

func (m *ClientMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run validates the inputs, then performs the exchange.  Nothing touches
// the network until both files have passed validation.
func (m *ClientMode) Run(ctx context.Context) error {
	msg, key, err := input.Pair(m.InputPath, m.KeyPath)
	if err != nil {
		return err
	}

	defer m.Dialer.Close()
	m.Logger.Verbose("connecting to %s", m.Address)

	conn, err := m.Dialer.Dial(ctx, "tcp", m.Address)
	if err != nil {
		return m.fail(ctx, err)
	}
	defer conn.Close()

	if m.Timeout > 0 {
		conn.SetDeadline(time.Now().Add(m.Timeout)) //nolint:errcheck
	}
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) }) //nolint:errcheck
	defer stop()

	if err := protocol.Offer(conn, m.Role); err != nil {
		return m.fail(ctx, err)
	}
	m.Logger.Debug("handshake with %s ok", m.Address)

	if err := protocol.WriteLength(conn, len(msg)); err != nil {
		return m.fail(ctx, err)
	}
	if err := protocol.WriteField(conn, "message", msg); err != nil {
		return m.fail(ctx, err)
	}
	if err := protocol.WriteField(conn, "key", key); err != nil {
		return m.fail(ctx, err)
	}

	n, err := util.StreamN(m.stdout(), conn, len(msg))
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return m.fail(ctx, errors.Protocol("result", m.Address, errors.ErrTimeout))
		}
		return m.fail(ctx, errors.Transfer("recv result", err))
	}
	if n < len(msg) {
		return m.fail(ctx, errors.Protocol("result", m.Address, errors.Short("result", n, len(msg))))
	}

	m.Logger.Verbose("%s %d bytes via %s", m.Role, n, m.Address)
	return nil
}

// fail reports a cancelled exchange as interrupted rather than as the
// deadline the cancellation forced on the connection.
func (m *ClientMode) fail(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return fmt.Errorf("%s via %s interrupted: %w", m.Role, m.Address, cerr)
	}
	return m.peer(err)
}

// peer stamps the service address onto protocol errors.
func (m *ClientMode) peer(err error) error {
	var pe *errors.ProtocolError
	if errors.As(err, &pe) && pe.Peer == "" {
		pe.Peer = m.Address
	}
	return err
}
