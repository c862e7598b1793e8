package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunPreservesInputOrder(t *testing.T) {
	t.Parallel()

	inputs := []int{50, 10, 40, 0, 30, 20}
	got, err := Run(context.Background(), 3, inputs, func(ctx context.Context, delay int, i int) (int, error) {
		// later indices finish first
		time.Sleep(time.Duration(delay) * time.Millisecond)
		return i * 10, nil
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []int{0, 10, 20, 30, 40, 50}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	inputs := make([]int, 10)

	_, err := Run(context.Background(), 3, inputs, func(ctx context.Context, _ int, _ int) (struct{}, error) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if p := peak.Load(); p > 3 {
		t.Fatalf("expected at most 3 concurrent workers, observed %d", p)
	}
	if p := peak.Load(); p == 0 {
		t.Fatalf("expected workers to run")
	}
}

func TestRunPropagatesFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var started atomic.Int32
	inputs := make([]int, 20)

	got, err := Run(context.Background(), 2, inputs, func(ctx context.Context, _ int, i int) (int, error) {
		started.Add(1)
		if i == 1 {
			return 0, boom
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return i, nil
		}
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil results on failure, got %v", got)
	}
	if n := started.Load(); int(n) >= len(inputs) {
		t.Fatalf("expected scheduling to stop after failure, %d of %d started", n, len(inputs))
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := Run(ctx, 4, []int{1, 2, 3}, func(ctx context.Context, v int, _ int) (int, error) {
		calls.Add(1)
		return v, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no calls, got %d", calls.Load())
	}
}

func TestRunZeroLimitRunsSerially(t *testing.T) {
	t.Parallel()

	got, err := Run(context.Background(), 0, []string{"a", "b"}, func(ctx context.Context, s string, _ int) (string, error) {
		return s + s, nil
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"aa", "bb"}, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}
