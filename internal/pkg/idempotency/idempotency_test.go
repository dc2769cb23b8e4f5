package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTracker(t *testing.T) *StateTracker {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("6379/tcp")).WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}

	url, err := ctr.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	return New(client)
}

func TestStateTrackerExec(t *testing.T) {
	tracker := setupTracker(t)
	ctx := context.Background()

	t.Run("runs once then dedupes", func(t *testing.T) {
		calls := 0
		fn := func(context.Context) error {
			calls++
			return nil
		}

		if err := tracker.Exec(ctx, "job-1", fn); err != nil {
			t.Fatalf("first exec: %v", err)
		}
		if err := tracker.Exec(ctx, "job-1", fn); !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected one execution, got %d", calls)
		}
	})

	t.Run("failure is remembered", func(t *testing.T) {
		wantErr := errors.New("boom")

		err := tracker.Exec(ctx, "job-2", func(context.Context) error { return wantErr })
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected the callback error, got %v", err)
		}

		err = tracker.Exec(ctx, "job-2", func(context.Context) error { return nil })
		if !errors.Is(err, ErrAlreadyFailed) {
			t.Fatalf("expected ErrAlreadyFailed, got %v", err)
		}
	})

	t.Run("state expires after ttl", func(t *testing.T) {
		fn := func(context.Context) error { return nil }

		if err := tracker.Exec(ctx, "job-3", fn, WithStateTTL(time.Second)); err != nil {
			t.Fatalf("first exec: %v", err)
		}

		time.Sleep(1500 * time.Millisecond)

		if err := tracker.Exec(ctx, "job-3", fn, WithStateTTL(time.Second)); err != nil {
			t.Fatalf("expected re-execution after ttl, got %v", err)
		}
	})
}

func TestStateTrackerAcquire(t *testing.T) {
	tracker := setupTracker(t)
	ctx := context.Background()

	state, err := tracker.Acquire(ctx, "lock-1", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if state != StateNone {
		t.Fatalf("expected StateNone for a fresh key, got %v", state)
	}

	state, err = tracker.Acquire(ctx, "lock-1", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if state != StateInProgress {
		t.Fatalf("expected StateInProgress for a held key, got %v", state)
	}

	if err := tracker.MarkCompleted(ctx, "lock-1", time.Minute); err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	state, err = tracker.Acquire(ctx, "lock-1", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if state != StateCompleted {
		t.Fatalf("expected StateCompleted, got %v", state)
	}
}
