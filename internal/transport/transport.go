// Package transport provides the network endpoints the otp tools run
// their sessions over: an outbound [Dialer] for clients and [Listen]
// for servers.  What happens over the connection is the protocol
// layer's job.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound network connections.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer.
	// Stateless dialers return nil.
	Close() error
}
