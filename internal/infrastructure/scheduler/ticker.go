package scheduler

import (
	"context"
	"sync"
	"time"

	"CounterPicker/internal/ports"
)

// TickerScheduler runs a job immediately and then once per interval.
type TickerScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler firing every interval (minimum one second).
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval < time.Second {
		interval = time.Second
	}
	return &TickerScheduler{interval: interval}
}

// Start begins ticking. Jobs run sequentially on one goroutine, so a slow
// job delays the next tick instead of overlapping it.
func (s *TickerScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine and waits for a running job to return.
func (s *TickerScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the ticker goroutine exits; nil when not started.
func (s *TickerScheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
