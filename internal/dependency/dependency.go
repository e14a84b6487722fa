package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
)

type (
	// Ledger persists manually tracked expenditure transactions.
	Ledger interface {
		// AddTransaction validates and stores one ledger entry, returning it
		// with its server-assigned identifier and timestamps.
		AddTransaction(ctx context.Context, ti *entity.TransactionInsert) (*entity.Transaction, error)
		// ListTransactions returns the whole ledger, newest first by date.
		ListTransactions(ctx context.Context) ([]entity.Transaction, error)
	}

	// OrderSource retrieves order records from the commerce backend.
	OrderSource interface {
		// FetchAllOrders pages through every order in [after, before] and
		// returns the concatenated result, or an error without partial data.
		FetchAllOrders(ctx context.Context, after, before time.Time) ([]entity.Order, error)
		GetRecentOrders(ctx context.Context, limit, page int) ([]entity.Order, error)
		FetchOrdersByStatus(ctx context.Context, status string, limit int) ([]entity.Order, error)
	}

	// DB is the sqlx surface the store helpers run queries against.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
