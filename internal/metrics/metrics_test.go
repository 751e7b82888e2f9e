package metrics

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestCollector_Sessions(t *testing.T) {
	c := New()

	c.SessionOpened()
	c.SessionOpened()
	c.SessionOpened()
	if c.ActiveSessions() != 3 {
		t.Errorf("active = %d, want 3", c.ActiveSessions())
	}

	c.SessionClosed(Completed)
	c.SessionClosed(Rejected)
	if c.ActiveSessions() != 1 {
		t.Errorf("active = %d, want 1", c.ActiveSessions())
	}
	if c.TotalSessions() != 3 {
		t.Errorf("total should remain 3, got %d", c.TotalSessions())
	}
	if c.RejectedSessions() != 1 {
		t.Errorf("rejected = %d, want 1", c.RejectedSessions())
	}

	c.SessionClosed(Failed)
	snap := c.Snapshot()
	if snap.SessionsCompleted != 1 || snap.SessionsFailed != 1 {
		t.Errorf("completed/failed = %d/%d, want 1/1", snap.SessionsCompleted, snap.SessionsFailed)
	}
}

func TestCollector_Bytes(t *testing.T) {
	c := New()

	c.BytesReceived(1024)
	c.BytesSent(512)
	c.BytesReceived(100)

	if c.TotalBytesIn() != 1124 {
		t.Errorf("bytes in = %d, want 1124", c.TotalBytesIn())
	}
	if c.TotalBytesOut() != 512 {
		t.Errorf("bytes out = %d, want 512", c.TotalBytesOut())
	}
}

func TestCollector_Workers(t *testing.T) {
	c := New()

	for i := 0; i < 5; i++ {
		c.WorkerStarted()
	}
	c.WorkerStopped()
	c.WorkerRestarted()
	c.WorkerStarted()

	if c.LiveWorkers() != 5 {
		t.Errorf("live = %d, want 5", c.LiveWorkers())
	}
	if c.WorkerRestarts() != 1 {
		t.Errorf("restarts = %d, want 1", c.WorkerRestarts())
	}
	if got := c.Snapshot().WorkerExits; got != 1 {
		t.Errorf("exits = %d, want 1", got)
	}
}

func TestCollector_Errors(t *testing.T) {
	c := New()

	c.RecordError("first error")
	c.RecordError("second error")

	if c.ErrorCount() != 2 {
		t.Errorf("errors = %d, want 2", c.ErrorCount())
	}
	if msg := c.Snapshot().LastErrorMessage; msg != "second error" {
		t.Errorf("last error = %q", msg)
	}
}

func TestCollector_Snapshot(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.BytesReceived(100)
	c.BytesSent(50)
	c.RecordError("test")

	snap := c.Snapshot()
	if snap.SessionsActive != 1 {
		t.Errorf("snap active = %d", snap.SessionsActive)
	}
	if snap.BytesIn != 100 {
		t.Errorf("snap bytes in = %d", snap.BytesIn)
	}
	if snap.ErrorsTotal != 1 {
		t.Errorf("snap errors = %d", snap.ErrorsTotal)
	}
	if snap.LastError == "" {
		t.Error("expected last error timestamp")
	}
}

func TestCollector_JSON(t *testing.T) {
	c := New()
	c.SessionOpened()
	c.BytesSent(42)

	raw := c.JSON()
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("JSON parse error: %v", err)
	}
	if snap.SessionsActive != 1 {
		t.Errorf("JSON active = %d", snap.SessionsActive)
	}
	if snap.BytesOut != 42 {
		t.Errorf("JSON bytes out = %d", snap.BytesOut)
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.SessionOpened()
				c.BytesReceived(1)
				c.SessionClosed(Completed)
			}
		}()
	}
	wg.Wait()

	if c.ActiveSessions() != 0 {
		t.Errorf("active = %d, want 0", c.ActiveSessions())
	}
	if c.TotalBytesIn() != 8000 {
		t.Errorf("bytes in = %d, want 8000", c.TotalBytesIn())
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		Completed:  "completed",
		Rejected:   "rejected",
		Failed:     "failed",
		Outcome(9): "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d) = %q, want %q", int(o), got, want)
		}
	}
}

func TestNilCollector_NoOps(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.SessionOpened()
	c.SessionClosed(Failed)
	c.BytesReceived(100)
	c.BytesSent(100)
	c.WorkerStarted()
	c.WorkerStopped()
	c.WorkerRestarted()
	c.RecordError("test")

	if c.ActiveSessions() != 0 {
		t.Error("nil collector should return 0")
	}
	if c.TotalBytesIn() != 0 {
		t.Error("nil collector should return 0")
	}
	if c.LiveWorkers() != 0 {
		t.Error("nil collector should return 0")
	}

	snap := c.Snapshot()
	if snap.SessionsActive != 0 {
		t.Error("nil snapshot should be zero")
	}

	j := c.JSON()
	if j == "" {
		t.Error("nil JSON should return valid JSON")
	}
}
