package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Unlimited lets every request through.
type Unlimited struct{}

// Allow implements Limiter.
func (Unlimited) Allow(string) bool { return true }

// Clock returns the current time.
type Clock func() time.Time

// Config stores KeyedLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped, 0 keeps them
	MaxBuckets int           // 0 means unbounded
}

// KeyedLimiter keeps a token bucket per caller key ("partner:<id>" or "ip:<addr>").
// When MaxBuckets is reached, idle buckets are evicted first; if none can go,
// new keys are refused.
type KeyedLimiter struct {
	cfg Config
	now Clock

	mu        sync.Mutex
	buckets   map[string]*keyBucket
	nextSweep time.Time
}

type keyBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewKeyedLimiter creates a limiter. A nil clock uses time.Now.
func NewKeyedLimiter(cfg Config, now Clock) *KeyedLimiter {
	if now == nil {
		now = time.Now
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &KeyedLimiter{cfg: cfg, now: now, buckets: make(map[string]*keyBucket)}
}

// Allow implements Limiter.
func (l *KeyedLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	if l.cfg.TTL > 0 && !now.Before(l.nextSweep) {
		l.evictIdle(now)
		l.nextSweep = now.Add(l.cfg.TTL)
	}
	b, ok := l.buckets[key]
	if !ok {
		if l.full() {
			l.evictIdle(now)
		}
		if l.full() {
			l.mu.Unlock()
			return false
		}
		b = &keyBucket{lim: rate.NewLimiter(rate.Limit(l.cfg.Rate), l.cfg.Burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	return b.lim.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *KeyedLimiter) full() bool {
	return l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets
}

// evictIdle must be called with l.mu held.
func (l *KeyedLimiter) evictIdle(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}
