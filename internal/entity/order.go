package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Order is a single order as returned by the WooCommerce REST API v3.
// WooCommerce sends monetary amounts as decimal strings ("149.00"); they
// decode directly into decimal.Decimal.
type Order struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	DateCreated string          `json:"date_created"`
	Total       decimal.Decimal `json:"total"`
	CustomerID  int64           `json:"customer_id"`
	Billing     Billing         `json:"billing"`
	LineItems   []LineItem      `json:"line_items"`
}

// Billing holds the billing contact fields used for customer grouping.
type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LineItem is one ordered position. Name is the display name of the product
// at order time, not a stable product id.
type LineItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// CreatedDate returns the calendar-date component of DateCreated
// (everything before the 'T' of the ISO 8601 timestamp).
func (o *Order) CreatedDate() string {
	date, _, _ := strings.Cut(o.DateCreated, "T")
	return date
}
