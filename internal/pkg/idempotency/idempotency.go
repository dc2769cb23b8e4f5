// Package idempotency provides an at-most-once guard backed by Redis.
//
// The notification consumer uses it to make sure a redelivered otp_issued
// event never sends a second text: each delivery attempt is keyed and moves
// through in_progress / completed / failed states with a TTL.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sentinel errors returned by Exec when a key has already been processed.
// Callers treat all three as "skip and ack".
var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

// State is the stored processing state of a key.
type State string

const (
	StateNone       State = "none"        // key is free, operation may proceed
	StateInProgress State = "in_progress" // another worker holds the key
	StateCompleted  State = "completed"   // a previous run finished
	StateFailed     State = "failed"      // a previous run failed
	StateError      State = "error"       // the state lookup itself failed
)

func (s State) String() string {
	return string(s)
}

// Idempotency guards an operation so it runs at most once per key.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// StateTracker implements Idempotency on a Redis key-per-operation scheme.
type StateTracker struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client) *StateTracker {
	return &StateTracker{
		client: client,
		prefix: "idempotency:",
	}
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

// Option tunes a single Exec call.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration bounds how long the in_progress claim survives if the
// worker dies mid-operation.
func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

// WithStateTTL bounds how long the completed/failed outcome is remembered,
// which is the dedupe window for redeliveries.
func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// Acquire claims the key, or reports the state a previous claimant left.
// SetNX is the atomic claim; when it loses, the stored state decides.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	claimed, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
	if err != nil {
		return StateError, err
	}
	if claimed {
		return StateNone, nil
	}

	stored, err := s.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// The key expired between SetNX and Get, claim again.
		claimed, err = s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if claimed {
			return StateNone, nil
		}
		return StateError, ErrInvalidState
	}
	if err != nil {
		return StateError, err
	}

	switch State(stored) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(stored), nil
	default:
		return StateError, ErrInvalidState
	}
}

func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateFailed.String(), ttl).Err()
}

// Exec runs fn under the key's claim. A key that was already claimed,
// completed, or failed yields the matching sentinel error without running fn.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{
		lockDuration: defaultLockDuration,
		stateTTL:     defaultStateTTL,
	}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := s.MarkFailed(ctx, key, execOpt.stateTTL); markErr != nil {
			return markErr
		}
		return err
	}

	return s.MarkCompleted(ctx, key, execOpt.stateTTL)
}
