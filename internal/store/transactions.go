package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vaseegrahveda/dashboard-manager/internal/dependency"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
)

type ledgerStore struct {
	*MYSQLStore
}

// Ledger returns the expenditure ledger repository.
func (ms *MYSQLStore) Ledger() dependency.Ledger {
	return &ledgerStore{MYSQLStore: ms}
}

// AddTransaction validates and inserts one ledger entry. Nothing is written
// when validation fails.
func (ms *MYSQLStore) AddTransaction(ctx context.Context, ti *entity.TransactionInsert) (*entity.Transaction, error) {
	if err := ti.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	id := uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)

	query := `
	INSERT INTO transactions
		(uuid, date, type, category, sub_category, description, amount, payment_mode, remark, created_at, updated_at)
	VALUES
		(:uuid, :date, :type, :category, :subCategory, :description, :amount, :paymentMode, :remark, :createdAt, :updatedAt)`

	err := ExecNamed(ctx, ms.db, query, map[string]any{
		"uuid":        id,
		"date":        ti.Date,
		"type":        ti.Type,
		"category":    ti.Category,
		"subCategory": ti.SubCategory,
		"description": ti.Description,
		"amount":      ti.Amount,
		"paymentMode": ti.PaymentMode,
		"remark":      ti.Remark,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return nil, fmt.Errorf("can't insert transaction: %w", err)
	}

	t, err := QueryNamedOne[entity.Transaction](ctx, ms.db,
		`SELECT * FROM transactions WHERE uuid = :uuid`,
		map[string]any{"uuid": id},
	)
	if err != nil {
		return nil, fmt.Errorf("can't get inserted transaction: %w", err)
	}
	return &t, nil
}

// ListTransactions returns every ledger entry, newest first by transaction
// date. Entries on the same date come back in reverse insertion order.
func (ms *MYSQLStore) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	list, err := QueryListNamed[entity.Transaction](ctx, ms.db,
		`SELECT * FROM transactions ORDER BY date DESC, id DESC`,
		map[string]any{},
	)
	if err != nil {
		return nil, fmt.Errorf("can't list transactions: %w", err)
	}
	return list, nil
}
