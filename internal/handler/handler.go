// Package handler defines what a server does with one accepted
// connection.  A Handler operates on a Session rather than a raw
// net.Conn, which keeps the exchange testable over net.Pipe and
// decoupled from how the pool accepts connections.
package handler

import (
	"context"

	"otp/internal/session"
)

// Handler runs one session to completion.  It blocks until the exchange
// is finished, the peer goes away, or ctx is cancelled, and always
// leaves the session closed.
type Handler interface {
	Handle(ctx context.Context, sess *session.Session) error
}
