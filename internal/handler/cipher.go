package handler

import (
	"context"
	"time"

	"otp/internal/errors"
	"otp/internal/metrics"
	"otp/internal/protocol"
	"otp/internal/session"
)

// Cipher serves one framed enc or dec exchange: handshake, length,
// message, key, transformed result.  The direction comes from the
// session's role.
type Cipher struct {
	// MaxSize bounds the declared length; 0 disables the check.
	MaxSize int
	// Timeout, when positive, is a deadline for the whole exchange.
	Timeout time.Duration
	Metrics *metrics.Collector
}

// Handle drives sess through every protocol state and closes it.
func (h *Cipher) Handle(ctx context.Context, sess *session.Session) (err error) {
	h.Metrics.SessionOpened()
	defer func() {
		h.Metrics.SessionClosed(outcome(err))
		sess.Close()
	}()

	if h.Timeout > 0 {
		sess.Conn.SetDeadline(time.Now().Add(h.Timeout)) //nolint:errcheck
	}
	// Shutdown forces any blocked read or write to return.
	stop := context.AfterFunc(ctx, func() { sess.Conn.SetDeadline(time.Now()) }) //nolint:errcheck
	defer stop()

	if err := sess.Advance(protocol.AwaitingHandshake); err != nil {
		return err
	}
	if err := protocol.Accept(sess.Conn, sess.Role); err != nil {
		return h.fail(sess, err)
	}
	h.Metrics.BytesReceived(int64(len(sess.Role.Client)))
	h.Metrics.BytesSent(int64(len(sess.Role.Server)))

	steps := []protocol.State{protocol.Authorized, protocol.AwaitingLength}
	for _, st := range steps {
		if err := sess.Advance(st); err != nil {
			return err
		}
	}
	n, err := protocol.ReadLength(sess.Conn, h.MaxSize)
	if err != nil {
		return h.fail(sess, err)
	}
	h.Metrics.BytesReceived(protocol.HeaderSize)
	sess.Alloc(n)

	if err := sess.Advance(protocol.AwaitingMessage); err != nil {
		return err
	}
	if err := protocol.ReadField(sess.Conn, "message", sess.Message); err != nil {
		return h.fail(sess, err)
	}
	if err := sess.Advance(protocol.AwaitingKey); err != nil {
		return err
	}
	if err := protocol.ReadField(sess.Conn, "key", sess.Key); err != nil {
		return h.fail(sess, err)
	}
	h.Metrics.BytesReceived(int64(2 * n))

	if err := sess.Advance(protocol.Processing); err != nil {
		return err
	}
	sess.Role.Direction.Apply(sess.Result, sess.Message, sess.Key)
	if err := protocol.WriteField(sess.Conn, "result", sess.Result); err != nil {
		return h.fail(sess, err)
	}
	h.Metrics.BytesSent(int64(n))

	if err := sess.Advance(protocol.ResponseSent); err != nil {
		return err
	}
	sess.Logger.Verbose("%s: %s %d bytes", sess.Peer(), sess.Role, n)
	return nil
}

// fail records err against the session's peer and moves it to Closed.
func (h *Cipher) fail(sess *session.Session, err error) error {
	var pe *errors.ProtocolError
	if errors.As(err, &pe) && pe.Peer == "" {
		pe.Peer = sess.Peer()
	}
	sess.Advance(protocol.Closed) //nolint:errcheck
	return err
}

func outcome(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.Completed
	case errors.Is(err, errors.ErrRoleMismatch):
		return metrics.Rejected
	default:
		return metrics.Failed
	}
}
