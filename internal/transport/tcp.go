package transport

import (
	"context"
	"net"
	"time"

	"otp/internal/errors"
)

// TCPDialer establishes plain TCP connections.
type TCPDialer struct {
	Timeout time.Duration
}

// Dial connects to address over TCP.  Failures come back as
// *errors.NetworkError.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, errors.Wrap("connect", address, err)
	}
	return conn, nil
}

// Close is a no-op for stateless TCP dialers.
func (d *TCPDialer) Close() error { return nil }

// Listen binds a TCP listener on address.  The listener is closed when
// ctx is done, which unblocks every goroutine parked in Accept.
func Listen(ctx context.Context, address string) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrap("listen", address, err)
	}
	context.AfterFunc(ctx, func() { ln.Close() })
	return ln, nil
}
