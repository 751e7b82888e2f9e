// Package errors provides the error taxonomy shared by the otp tools.
//
// Each type carries enough context (operation, address, field) to produce
// a useful diagnostic, and [ExitCode] maps any wrapped error onto the
// process exit status the CLIs report.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrRoleMismatch  = errors.New("role tag mismatch")
	ErrShortTransfer = errors.New("short transfer")
	ErrFrameTooLarge = errors.New("declared length exceeds limit")
	ErrKeyTooShort   = errors.New("key is too short")
	ErrInvalidSymbol = errors.New("invalid characters")
	ErrTimeout       = errors.New("session deadline exceeded")
	ErrWorkerPanic   = errors.New("worker panicked")
)

// ── Exit codes ───────────────────────────────────────────────────────

const (
	ExitOK       = 0
	ExitUsage    = 1
	ExitInvalid  = 1
	ExitNetwork  = 2
	ExitProtocol = 2
	ExitTransfer = 3
)

// ── Structured error types ───────────────────────────────────────────

// UsageError reports a malformed command line.
type UsageError struct {
	Tool    string
	Message string
}

func (e *UsageError) Error() string {
	if e.Tool == "" {
		return "usage: " + e.Message
	}
	return fmt.Sprintf("usage: %s %s", e.Tool, e.Message)
}

// ValidationError reports local input that cannot be sent: a symbol
// outside the alphabet, a key shorter than its message, or an unreadable
// file.
type ValidationError struct {
	Subject string // "plaintext", "key", ...
	Path    string // file involved, if any
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Subject, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Subject, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NetworkError represents a failure to establish connectivity: resolve,
// dial, listen or accept.
type NetworkError struct {
	Op        string // operation: "dial", "listen", "accept"
	Addr      string // network address involved
	Err       error  // underlying error
	Retryable bool   // whether the caller could retry
}

func (e *NetworkError) Error() string {
	s := fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
	if e.Retryable {
		s += " (retryable)"
	}
	return s
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError reports a peer that broke the framed session: wrong role
// tag, truncated field, or an oversized length header.
type ProtocolError struct {
	Phase string // protocol state in which the violation was seen
	Peer  string
	Err   error
}

func (e *ProtocolError) Error() string {
	if e.Peer == "" {
		return fmt.Sprintf("protocol %s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("protocol %s %s: %v", e.Phase, e.Peer, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TransferError reports an I/O primitive that failed outright, as opposed
// to the channel simply closing.
type TransferError struct {
	Op  string // "send" or "recv"
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError, automatically detecting retryability
// from the underlying error.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{
		Op:        op,
		Addr:      addr,
		Err:       err,
		Retryable: classifyRetryable(err),
	}
}

// Protocol creates a ProtocolError for the given phase.
func Protocol(phase, peer string, err error) *ProtocolError {
	return &ProtocolError{Phase: phase, Peer: peer, Err: err}
}

// Transfer creates a TransferError.
func Transfer(op string, err error) *TransferError {
	return &TransferError{Op: op, Err: err}
}

// Short builds the error for a field that moved fewer bytes than declared.
func Short(field string, got, want int) error {
	return fmt.Errorf("%s: got %d of %d bytes: %w", field, got, want, ErrShortTransfer)
}

// ── Classification helpers ───────────────────────────────────────────

// ExitCode maps err onto the process exit status.  Unknown errors map to
// [ExitUsage], the lowest-severity failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		ue *UsageError
		ve *ValidationError
		ce *ConfigError
		ne *NetworkError
		pe *ProtocolError
		te *TransferError
	)
	switch {
	case errors.As(err, &ue), errors.As(err, &ce):
		return ExitUsage
	case errors.As(err, &ve):
		return ExitInvalid
	case errors.As(err, &ne):
		return ExitNetwork
	case errors.As(err, &pe):
		return ExitProtocol
	case errors.As(err, &te):
		return ExitTransfer
	default:
		return ExitUsage
	}
}

// IsFatal reports whether err should terminate the worker that hit it.
// Only outright transfer failures and panics qualify; everything a
// misbehaving peer can cause is confined to its own session.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var te *TransferError
	return errors.As(err, &te) || errors.Is(err, ErrWorkerPanic)
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Retryable
	}
	return classifyRetryable(err)
}

// classifyRetryable inspects standard library error types.
func classifyRetryable(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() //nolint:staticcheck
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use otp/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
