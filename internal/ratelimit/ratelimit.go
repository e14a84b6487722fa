package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// APILimiter bundles the per-endpoint limiters for the dashboard API.
// Analytics requests are limited harder than ledger writes since each one
// triggers a full paginated fetch against the WooCommerce store.
type APILimiter struct {
	ledgerWrites *Limiter
	analytics    *Limiter
}

// NewAPILimiter creates an APILimiter with default limits.
func NewAPILimiter() *APILimiter {
	return &APILimiter{
		ledgerWrites: NewLimiter(time.Minute, 30),
		analytics:    NewLimiter(time.Minute, 10),
	}
}

// NewCustomAPILimiter creates an APILimiter with custom per-minute limits.
func NewCustomAPILimiter(ledgerWriteLimit, analyticsLimit int) *APILimiter {
	return &APILimiter{
		ledgerWrites: NewLimiter(time.Minute, ledgerWriteLimit),
		analytics:    NewLimiter(time.Minute, analyticsLimit),
	}
}

// CheckLedgerWrite verifies a ledger entry can be created from the given IP.
func (a *APILimiter) CheckLedgerWrite(ip string) error {
	if !a.ledgerWrites.Allow(ip) {
		return fmt.Errorf("too many ledger entries from this IP address, please try again later")
	}
	return nil
}

// CheckAnalyticsRefresh verifies an analytics fetch is allowed from the given IP.
func (a *APILimiter) CheckAnalyticsRefresh(ip string) error {
	if !a.analytics.Allow(ip) {
		return fmt.Errorf("too many analytics requests from this IP address, please try again later")
	}
	return nil
}
