package entity

import (
	"errors"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDate     = errors.New("transaction date is required")
	ErrInvalidAmount = errors.New("transaction amount must be greater than zero")
)

// Transaction is one row of the expenditures ledger.
type Transaction struct {
	ID        int       `db:"id" json:"-"`
	UUID      string    `db:"uuid" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	TransactionInsert
}

// TransactionInsert carries the client-supplied fields of a ledger entry.
// SubCategory and Remark are optional and default to empty.
type TransactionInsert struct {
	Date        time.Time       `db:"date" json:"date"`
	Type        string          `db:"type" json:"type" valid:"required"`
	Category    string          `db:"category" json:"category" valid:"required"`
	SubCategory string          `db:"sub_category" json:"subCategory"`
	Description string          `db:"description" json:"description" valid:"required"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PaymentMode string          `db:"payment_mode" json:"paymentMode" valid:"required"`
	Remark      string          `db:"remark" json:"remark"`
}

// Validate checks the required fields before anything is written.
func (ti *TransactionInsert) Validate() error {
	if _, err := govalidator.ValidateStruct(ti); err != nil {
		return err
	}
	if ti.Date.IsZero() {
		return ErrEmptyDate
	}
	if !ti.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
