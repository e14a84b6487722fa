package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsSummary is the full rollup computed over one fetched order range.
// It is recomputed from scratch on every fetch; nothing here is incremental.
type AnalyticsSummary struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	DailyRevenue      []DailyRevenue  `json:"dailyRevenue"`
	DailyOrders       []DailyOrders   `json:"dailyOrders"`
	TopProducts       []ProductSales  `json:"topProducts"`
	SalesProducts     []ProductSales  `json:"salesProducts"`
	OrdersByStatus    map[string]int  `json:"ordersByStatus"`
	CustomerAnalytics int             `json:"customerAnalytics"`
	TopCustomers      []CustomerSales `json:"topCustomers"`
}

// DailyRevenue is revenue summed over one calendar date.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyOrders is the order count for one calendar date.
type DailyOrders struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}

// ProductSales accumulates quantity and revenue per product name.
type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// CustomerSales accumulates per-customer order stats.
type CustomerSales struct {
	Name          string          `json:"name"`
	OrderCount    int             `json:"orderCount"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

// TimeRange bounds one reporting period, inclusive on both ends.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
