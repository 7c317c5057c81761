package store

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/workhive/workhive-api/internal/ratelimit"
	"go.uber.org/zap"
)

// ConnState tracks the Redis counter store's connection lifecycle.
type ConnState int32

const (
	// StateDisconnected means no connection has been attempted or the store
	// has been shut down.
	StateDisconnected ConnState = iota
	// StateConnecting means the startup ping is in flight.
	StateConnecting
	// StateConnected means the store is confirmed reachable.
	StateConnected
	// StateErrored means the last health probe failed.
	StateErrored
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateErrored:
		return "errored"
	default:
		return "disconnected"
	}
}

const (
	redisCommandTimeout = 2 * time.Second
	redisProbeInterval  = 15 * time.Second
	// counterKeyPattern matches all rate limit counter keys for Clear.
	counterKeyPattern = "rl:*"
)

// RedisCounterStore is a distributed implementation of
// ratelimit.CounterStore. Counters are shared across instances; the store
// reports readiness so callers can route around it while it is unreachable.
//
// Increment issues INCR and PTTL in one pipeline, then applies the window
// TTL only when the key has none. A crash between the increment and the
// expire leaves the key without a TTL until cleared; accepted in exchange
// for plain commands and a single extra round trip on new windows only.
type RedisCounterStore struct {
	client *redis.Client
	logger *zap.Logger

	mu     sync.Mutex
	state  ConnState
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisCounterStore creates a distributed counter store. The store starts
// Disconnected; call Start to begin connecting.
func NewRedisCounterStore(client *redis.Client, logger *zap.Logger) *RedisCounterStore {
	return &RedisCounterStore{
		client: client,
		logger: logger,
		state:  StateDisconnected,
		done:   make(chan struct{}),
	}
}

// Start attempts the connection asynchronously and keeps probing it. The
// store becomes ready only after the first successful ping; probe failures
// mark it errored until a later probe succeeds. Start never blocks and
// never returns an error: an unreachable backend just leaves the store
// not ready.
func (s *RedisCounterStore) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.state = StateConnecting
	s.mu.Unlock()

	go s.probeLoop(ctx)
}

func (s *RedisCounterStore) probeLoop(ctx context.Context) {
	defer close(s.done)

	s.probe(ctx)

	ticker := time.NewTicker(redisProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

func (s *RedisCounterStore) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, redisCommandTimeout)
	defer cancel()

	err := s.client.Ping(pingCtx).Err()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err != nil && s.state != StateErrored:
		s.state = StateErrored
		s.logger.Warn("redis counter store unavailable", zap.Error(err))
	case err == nil && s.state != StateConnected:
		s.state = StateConnected
		s.logger.Info("redis counter store connected")
	}
}

// Ready reports whether the store is confirmed reachable.
func (s *RedisCounterStore) Ready() bool {
	return s.State() == StateConnected
}

// State returns the current connection state.
func (s *RedisCounterStore) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (ratelimit.Counter, error) {
	ctx, cancel := context.WithTimeout(ctx, redisCommandTimeout)
	defer cancel()

	now := time.Now()

	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pttl := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return ratelimit.Counter{}, err
	}

	resetAt := now.Add(window)

	if ttl := pttl.Val(); ttl > 0 {
		resetAt = now.Add(ttl)
	} else {
		// New key, or a key left without TTL by a crash: (re)apply the
		// window expiry.
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return ratelimit.Counter{}, err
		}
	}

	return ratelimit.Counter{Count: incr.Val(), ResetAt: resetAt}, nil
}

func (s *RedisCounterStore) Reset(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, redisCommandTimeout)
	defer cancel()

	// KEEPTTL preserves the window end while zeroing the count.
	return s.client.SetArgs(ctx, key, 0, redis.SetArgs{KeepTTL: true}).Err()
}

func (s *RedisCounterStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisCommandTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, counterKeyPattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}

	return iter.Err()
}

// Shutdown stops the probe loop and closes the client. Safe to call once
// during process shutdown; callers log rather than propagate the error.
func (s *RedisCounterStore) Shutdown() error {
	s.mu.Lock()
	cancel := s.cancel
	s.state = StateDisconnected
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-s.done
	}

	return s.client.Close()
}

// Compile-time check.
var _ ratelimit.CounterStore = (*RedisCounterStore)(nil)
