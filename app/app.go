package app

import (
	"context"

	"log/slog"

	"github.com/vaseegrahveda/dashboard-manager/config"
	httpapi "github.com/vaseegrahveda/dashboard-manager/internal/api/http"
	"github.com/vaseegrahveda/dashboard-manager/internal/dashboard"
	"github.com/vaseegrahveda/dashboard-manager/internal/store"
	"github.com/vaseegrahveda/dashboard-manager/internal/woo"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   *store.MYSQLStore
	dash *dashboard.Service
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting dashboard manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	wooClient, err := woo.New(&a.c.Woo)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create woocommerce client",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.dash = dashboard.New(a.c.Dashboard, wooClient)
	a.dash.Start(ctx)

	a.hs = httpapi.New(&a.c.HTTP, a.db.Ledger(), wooClient, a.dash)
	if err = a.hs.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		a.hs.Stop(ctx)
	}
	if a.dash != nil {
		a.dash.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
