// Package metrics provides lightweight, lock-free counters and gauges
// for tracking the runtime statistics of an otp service.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for one service process.
// A nil Collector is safe to use; all methods become no-ops.
type Collector struct {
	sessionsActive    atomic.Int64
	sessionsTotal     atomic.Int64
	sessionsCompleted atomic.Int64
	sessionsRejected  atomic.Int64
	sessionsFailed    atomic.Int64
	bytesIn           atomic.Int64
	bytesOut          atomic.Int64
	workersLive       atomic.Int64
	workerExits       atomic.Int64
	workerRestarts    atomic.Int64
	errorsTotal       atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active counter and records the outcome.
func (c *Collector) SessionClosed(outcome Outcome) {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
	switch outcome {
	case Completed:
		c.sessionsCompleted.Add(1)
	case Rejected:
		c.sessionsRejected.Add(1)
	case Failed:
		c.sessionsFailed.Add(1)
	}
}

// ActiveSessions returns the number of sessions in flight.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// RejectedSessions returns how many handshakes were refused.
func (c *Collector) RejectedSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsRejected.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Worker metrics ───────────────────────────────────────────────────

// WorkerStarted records a worker entering its accept loop.
func (c *Collector) WorkerStarted() {
	if c == nil {
		return
	}
	c.workersLive.Add(1)
}

// WorkerStopped records a worker leaving its accept loop.
func (c *Collector) WorkerStopped() {
	if c == nil {
		return
	}
	c.workersLive.Add(-1)
	c.workerExits.Add(1)
}

// WorkerRestarted records the supervisor relaunching a worker.
func (c *Collector) WorkerRestarted() {
	if c == nil {
		return
	}
	c.workerRestarts.Add(1)
}

// LiveWorkers returns the number of workers currently accepting or serving.
func (c *Collector) LiveWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.workersLive.Load()
}

// WorkerRestarts returns the total relaunch count.
func (c *Collector) WorkerRestarts() int64 {
	if c == nil {
		return 0
	}
	return c.workerRestarts.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	SessionsActive    int64  `json:"sessions_active"`
	SessionsTotal     int64  `json:"sessions_total"`
	SessionsCompleted int64  `json:"sessions_completed"`
	SessionsRejected  int64  `json:"sessions_rejected"`
	SessionsFailed    int64  `json:"sessions_failed"`
	BytesIn           int64  `json:"bytes_in"`
	BytesOut          int64  `json:"bytes_out"`
	WorkersLive       int64  `json:"workers_live"`
	WorkerExits       int64  `json:"worker_exits"`
	WorkerRestarts    int64  `json:"worker_restarts"`
	ErrorsTotal       int64  `json:"errors_total"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Second).String(),
		SessionsActive:    c.sessionsActive.Load(),
		SessionsTotal:     c.sessionsTotal.Load(),
		SessionsCompleted: c.sessionsCompleted.Load(),
		SessionsRejected:  c.sessionsRejected.Load(),
		SessionsFailed:    c.sessionsFailed.Load(),
		BytesIn:           c.bytesIn.Load(),
		BytesOut:          c.bytesOut.Load(),
		WorkersLive:       c.workersLive.Load(),
		WorkerExits:       c.workerExits.Load(),
		WorkerRestarts:    c.workerRestarts.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
