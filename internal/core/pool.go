package core

import (
	"context"
	"fmt"
	"net"
	"time"

	"otp/internal/errors"
	"otp/internal/handler"
	"otp/internal/metrics"
	"otp/internal/protocol"
	"otp/internal/retry"
	"otp/internal/session"
	"otp/util"
)

// maxAcceptDelay caps the pause between retries of a transient accept
// failure such as EMFILE.
const maxAcceptDelay = time.Second

// pool is a fixed set of acceptor goroutines sharing one listener.
// Each worker serves its session to completion before accepting the
// next, so at most size sessions are in flight and further clients
// wait in the listen backlog.
type pool struct {
	size        int
	role        protocol.Role
	restart     bool
	maxRestarts int
	backoff     *retry.Backoff
	handler     handler.Handler
	metrics     *metrics.Collector
	logger      *util.Logger
}

// workerHandle is the supervisor's view of one pool slot.
type workerHandle struct {
	id       int
	done     chan struct{}
	err      error // why the slot ended; nil on shutdown
	restarts int
}

// run starts every slot and waits on each handle in turn.  The returned
// error joins the reasons of slots that died rather than shut down.
func (p *pool) run(ctx context.Context, ln net.Listener) error {
	handles := make([]*workerHandle, p.size)
	for i := range handles {
		h := &workerHandle{id: i + 1, done: make(chan struct{})}
		handles[i] = h
		go func() {
			defer close(h.done)
			h.err = p.supervise(ctx, ln, h)
		}()
	}

	var errs []error
	for _, h := range handles {
		<-h.done
		if h.err != nil {
			errs = append(errs, fmt.Errorf("worker %d: %w", h.id, h.err))
		}
	}
	return errors.Join(errs...)
}

// supervise keeps one slot filled.  Without restarts a fatal error
// simply ends the slot and the pool shrinks.
func (p *pool) supervise(ctx context.Context, ln net.Listener, h *workerHandle) error {
	if !p.restart {
		err := p.work(ctx, ln, h.id)
		if err != nil {
			p.logger.Warn("worker %d exited: %v", h.id, err)
		}
		return err
	}

	b := *retry.DefaultBackoff()
	if p.backoff != nil {
		b = *p.backoff
	}
	if p.maxRestarts > 0 {
		b.MaxAttempts = p.maxRestarts + 1
	} else {
		b.MaxAttempts = 0
	}
	b.OnRetry = func(attempt int, err error, wait time.Duration) {
		p.logger.Warn("worker %d exited: %v; relaunching in %v", h.id, err, wait.Truncate(time.Millisecond))
	}

	err := b.Do(ctx, func(attempt int) error {
		if attempt > 1 {
			h.restarts++
			p.metrics.WorkerRestarted()
		}
		return p.work(ctx, ln, h.id)
	})
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		p.logger.Error("worker %d gave up after %d restarts: %v", h.id, h.restarts, err)
	}
	return err
}

// work is the accept loop of a single worker.  It returns nil when the
// listener closes and an error when the worker must die.  Transient
// accept failures are retried in place; any other accept failure is
// permanent, since every relaunch would hit the same listener.
func (p *pool) work(ctx context.Context, ln net.Listener, id int) error {
	p.metrics.WorkerStarted()
	defer p.metrics.WorkerStopped()

	log := p.logger.Named(fmt.Sprintf("worker %d", id))
	log.Debug("accepting")

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			err = errors.Wrap("accept", ln.Addr().String(), err)
			if !errors.IsRetryable(err) {
				return retry.Permanent(err)
			}
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else if tempDelay *= 2; tempDelay > maxAcceptDelay {
				tempDelay = maxAcceptDelay
			}
			p.metrics.RecordError(err.Error())
			log.Warn("%v; retrying in %v", err, tempDelay)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(tempDelay):
			}
			continue
		}
		tempDelay = 0

		err = p.serve(ctx, conn, log)
		switch {
		case err == nil:
		case errors.IsFatal(err):
			p.metrics.RecordError(err.Error())
			return err
		case ctx.Err() != nil:
			return nil
		default:
			p.metrics.RecordError(err.Error())
			log.Warn("%v", err)
		}
	}
}

// serve runs one session.  A panic in the handler is converted to
// ErrWorkerPanic so it takes down only this worker.
func (p *pool) serve(ctx context.Context, conn net.Conn, log *util.Logger) (err error) {
	sess := session.New(conn, p.role, log)
	defer func() {
		if r := recover(); r != nil {
			sess.Close()
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	log.Verbose("connection from %s", sess.Peer())
	return p.handler.Handle(ctx, sess)
}
