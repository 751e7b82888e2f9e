package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPoolSize is the number of acceptor workers per service.
	DefaultPoolSize = 5

	// DefaultHost is where clients look for the service.
	DefaultHost = "localhost"

	// DefaultBindAddress binds the service on every interface.
	DefaultBindAddress = ""

	// DefaultMaxMessageSize caps the length header a service will accept
	// before allocating session buffers (64 MiB).  Zero disables the cap.
	DefaultMaxMessageSize = 64 << 20

	// DefaultMaxRestarts bounds worker relaunches per slot; 0 = unlimited.
	DefaultMaxRestarts = 0

	// DefaultRestartDelay is the first backoff step before relaunching a
	// worker that terminated.
	DefaultRestartDelay = 100 * time.Millisecond

	// DefaultMaxRestartDelay caps the relaunch backoff.
	DefaultMaxRestartDelay = 5 * time.Second

	// DefaultDialTimeout bounds how long a client waits to connect.
	DefaultDialTimeout = 10 * time.Second

	// DefaultVerbosity prints lifecycle events and errors.
	DefaultVerbosity = 1
)
