// Package dashboard runs the fetch-then-aggregate pipeline and caches the
// most recent analytics summary for the API to serve.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vaseegrahveda/dashboard-manager/internal/analytics"
	"github.com/vaseegrahveda/dashboard-manager/internal/dependency"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
)

// Config holds configuration for the dashboard refresh worker.
type Config struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 15 * time.Minute,
		DefaultWindow:   30 * 24 * time.Hour,
	}
}

// Service owns the order fetch-aggregate sequence. Overlapping refreshes are
// serialized by a generation counter: whichever call started last wins the
// cached slot, and a slower, earlier call completing afterwards discards its
// result instead of overwriting fresher data.
type Service struct {
	c   Config
	src dependency.OrderSource

	mu          sync.RWMutex
	gen         uint64
	summary     *entity.AnalyticsSummary
	period      entity.TimeRange
	refreshedAt time.Time

	cancel context.CancelFunc
	doneCh chan struct{}
}

// New creates the dashboard service over an order source.
func New(c Config, src dependency.OrderSource) *Service {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultConfig().RefreshInterval
	}
	if c.DefaultWindow <= 0 {
		c.DefaultWindow = DefaultConfig().DefaultWindow
	}
	return &Service{c: c, src: src}
}

// Refresh fetches every order in [after, before], aggregates it and returns
// the summary. The cached summary is only replaced when no newer refresh has
// started in the meantime. A fetch failure leaves the cache untouched.
func (s *Service) Refresh(ctx context.Context, after, before time.Time) (*entity.AnalyticsSummary, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	orders, err := s.src.FetchAllOrders(ctx, after, before)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	summary := analytics.Aggregate(orders)

	s.mu.Lock()
	if gen == s.gen {
		s.summary = summary
		s.period = entity.TimeRange{From: after, To: before}
		s.refreshedAt = time.Now()
	}
	s.mu.Unlock()

	return summary, nil
}

// Summary returns the cached summary with the period it covers, or false when
// nothing has been computed yet.
func (s *Service) Summary() (*entity.AnalyticsSummary, entity.TimeRange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return nil, entity.TimeRange{}, false
	}
	return s.summary, s.period, true
}

// Start launches the background worker keeping the default rolling window
// warm. It refreshes once immediately so the cache is populated on boot.
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.doneCh = make(chan struct{})
	go s.worker(ctx)
}

// Stop terminates the background worker and waits for it to exit.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.doneCh
}
