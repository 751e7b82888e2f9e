// Package session holds the ephemeral per-connection state of one framed
// exchange: the socket, the negotiated role, the declared length and the
// three buffers sized to it.
//
// A Session is owned by exactly one goroutine (a server worker or a
// client) and never outlives its connection.
package session

import (
	"fmt"
	"net"

	"otp/internal/protocol"
	"otp/util"
)

// Session encapsulates the runtime context for a single connection.
type Session struct {
	Conn   net.Conn
	Role   protocol.Role
	Logger *util.Logger

	Length  int
	Message []byte
	Key     []byte
	Result  []byte

	state  protocol.State
	closed bool
}

// New creates a Session bound to conn in the Connecting state.
func New(conn net.Conn, role protocol.Role, logger *util.Logger) *Session {
	return &Session{
		Conn:   conn,
		Role:   role,
		Logger: logger,
		state:  protocol.Connecting,
	}
}

// State returns the current protocol state.
func (s *Session) State() protocol.State { return s.state }

// Peer returns the remote address for log lines.
func (s *Session) Peer() string { return util.PeerName(s.Conn) }

// Advance moves the session to next, refusing anything but the immediate
// successor or Closed.
func (s *Session) Advance(next protocol.State) error {
	if !s.state.CanTransition(next) {
		return fmt.Errorf("session %s: illegal transition %s -> %s", s.Peer(), s.state, next)
	}
	s.Logger.Debug("%s: %s -> %s", s.Peer(), s.state, next)
	s.state = next
	return nil
}

// Alloc sizes the message, key and result buffers to exactly n bytes.
func (s *Session) Alloc(n int) {
	s.Length = n
	s.Message = make([]byte, n)
	s.Key = make([]byte, n)
	s.Result = make([]byte, n)
}

// Close closes the connection, moves to Closed and drops the buffers.
// It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.state = protocol.Closed
	s.Message, s.Key, s.Result = nil, nil, nil
	if s.Conn == nil {
		return nil
	}
	return s.Conn.Close()
}
