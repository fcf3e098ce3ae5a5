package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/PaulBabatuyi/jobboard-chat/internal/normalize"
)

// limiterIdleTTL is how long a key may go unused before its bucket is dropped.
const limiterIdleTTL = 10 * time.Minute

// LimiterStore hands out one token bucket per key (an account name or a peer
// address) and forgets buckets that have gone idle.
type LimiterStore struct {
	every rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket

	sweepEvery time.Duration
	done       chan struct{}
	stopOnce   sync.Once
}

type bucket struct {
	limiter *rate.Limiter
	used    time.Time
}

// NewLimiterStore allows perMinute events per key with the given burst.
// Idle buckets are swept every sweepEvery. A non-positive perMinute falls
// back to one event per second.
func NewLimiterStore(perMinute, burst int, sweepEvery time.Duration) *LimiterStore {
	if perMinute <= 0 {
		perMinute = 60
	}
	s := &LimiterStore{
		every:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:      burst,
		buckets:    make(map[string]*bucket),
		sweepEvery: sweepEvery,
		done:       make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *LimiterStore) sweep() {
	t := time.NewTicker(s.sweepEvery)
	defer t.Stop()
	for {
		select {
		case now := <-t.C:
			s.evictIdle(now)
		case <-s.done:
			return
		}
	}
}

// evictIdle drops buckets last used more than limiterIdleTTL before now.
func (s *LimiterStore) evictIdle(now time.Time) {
	cutoff := now.Add(-limiterIdleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.buckets {
		if b.used.Before(cutoff) {
			delete(s.buckets, key)
		}
	}
}

// Stop ends the sweeper. Calling it again is a no-op.
func (s *LimiterStore) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Len reports how many keys currently hold a bucket.
func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// Allow takes one token from key's bucket, creating the bucket on first use.
func (s *LimiterStore) Allow(key string) bool {
	now := time.Now()

	s.mu.Lock()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.every, s.burst)}
		s.buckets[key] = b
	}
	b.used = now
	s.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// limiterKey buckets requests carrying a user name by account, so one client
// cannot spread password guesses over many addresses. Anything else is keyed
// by peer address.
func limiterKey(ctx context.Context, req any) string {
	if r, ok := req.(interface{ GetUserName() string }); ok {
		if name := normalize.UserName(r.GetUserName()); name != "" {
			return "user:" + name
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return "addr:" + p.Addr.String()
	}
	return "unknown"
}

// RateLimitUnaryInterceptor rejects calls to the listed methods with
// ResourceExhausted once their key runs out of tokens.
func RateLimitUnaryInterceptor(store *LimiterStore, limited map[string]bool, logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if !limited[info.FullMethod] {
			return handler(ctx, req)
		}

		key := limiterKey(ctx, req)
		if !store.Allow(key) {
			logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", RequestIDFromContext(ctx),
				"method", info.FullMethod,
				"key", key,
			)
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}
