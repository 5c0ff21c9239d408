// Package limiter enforces the documented request-rate contract at the edge:
// generation endpoints are limited per presentation, metadata endpoints
// globally. Health is never limited.
package limiter

import (
	"sync"

	"golang.org/x/time/rate"
)

// KeyedLimiter hands out one token-bucket limiter per key, creating buckets
// lazily. Keys are presentation ids for the generation endpoints.
type KeyedLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func NewKeyed(perMinute int) *KeyedLimiter {
	return &KeyedLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
	}
}

// Allow reports whether a request for the given key may proceed now.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	l.mu.Unlock()
	return b.Allow()
}

// Global is a single shared bucket, used for metadata endpoints.
type Global struct {
	limiter *rate.Limiter
}

func NewGlobal(perMinute int) *Global {
	return &Global{
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
	}
}

func (g *Global) Allow() bool {
	return g.limiter.Allow()
}
