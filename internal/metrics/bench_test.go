package metrics

import "testing"

// BenchmarkCollector_SessionLifecycle measures one open/close pair as a
// worker records it for every session, cycling through the outcomes.
func BenchmarkCollector_SessionLifecycle(b *testing.B) {
	c := New()
	outcomes := []Outcome{Completed, Rejected, Failed}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SessionOpened()
		c.SessionClosed(outcomes[i%len(outcomes)])
	}
}

// BenchmarkCollector_SessionLifecycle_Parallel measures counter contention
// with every worker of a pool recording sessions at once.
func BenchmarkCollector_SessionLifecycle_Parallel(b *testing.B) {
	c := New()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.SessionOpened()
			c.BytesReceived(2 * 1024)
			c.BytesSent(1024)
			c.SessionClosed(Completed)
		}
	})
}

func BenchmarkCollector_WorkerRelaunch(b *testing.B) {
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.WorkerStarted()
		c.WorkerStopped()
		c.WorkerRestarted()
	}
}

func BenchmarkCollector_Snapshot(b *testing.B) {
	c := New()
	c.SessionOpened()
	c.SessionClosed(Rejected)
	c.WorkerStarted()
	c.RecordError("accept: too many open files")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Snapshot()
	}
}
