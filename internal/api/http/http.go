// Package httpapi serves the dashboard REST API: the expenditures ledger and
// the WooCommerce order analytics endpoints.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vaseegrahveda/dashboard-manager/internal/dashboard"
	"github.com/vaseegrahveda/dashboard-manager/internal/dependency"
	mw "github.com/vaseegrahveda/dashboard-manager/internal/middleware"
	"github.com/vaseegrahveda/dashboard-manager/internal/ratelimit"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	ledger  dependency.Ledger
	orders  dependency.OrderSource
	dash    *dashboard.Service
	limiter *ratelimit.APILimiter
	done    chan struct{}
}

// New creates a new server
func New(c *Config, ledger dependency.Ledger, orders dependency.OrderSource, dash *dashboard.Service) *Server {
	return &Server{
		c:       c,
		ledger:  ledger,
		orders:  orders,
		dash:    dash,
		limiter: ratelimit.NewAPILimiter(),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(mw.ClientIdentifier)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/expenditures", s.handleListTransactions)
		r.Post("/expenditures", s.handleCreateTransaction)
		r.Get("/expenditures/export", s.handleExportTransactions)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/orders", s.handleOrderAnalytics)
			r.Get("/orders/cached", s.handleCachedAnalytics)
			r.Get("/orders/recent", s.handleRecentOrders)
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("veda-dashboard-manager new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down, waiting for in-flight requests.
func (s *Server) Stop(ctx context.Context) {
	if s.hs == nil {
		return
	}
	if err := s.hs.Shutdown(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "http server shutdown",
			slog.String("err", err.Error()),
		)
	}
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}

	return false
}
