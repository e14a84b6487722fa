// Package analytics reduces fetched WooCommerce orders into the dashboard
// summary. Aggregation is a pure in-memory pass; all I/O happens before it.
package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
)

// topListSize caps the topProducts and topCustomers lists.
const topListSize = 10

// Aggregate computes the analytics summary over a finite order list in a
// single pass followed by a sort/truncate finalization. It is deterministic,
// touches no shared state and never fails on decoded input; an empty list
// yields a zeroed summary with AverageOrderValue = 0.
//
// Revenue, order counts and the per-date buckets include every order
// regardless of its workflow status. Filtering those by status undercounted
// revenue in an earlier rendition of this dashboard and is intentionally not
// done here.
func Aggregate(orders []entity.Order) *entity.AnalyticsSummary {
	var (
		totalRevenue decimal.Decimal
		dailyRevenue = map[string]decimal.Decimal{}
		dailyOrders  = map[string]int{}
		products     = map[string]*entity.ProductSales{}
		productNames []string
		customers    = map[string]*entity.CustomerSales{}
		customerKeys []string
		byStatus     = map[string]int{}
	)

	for _, o := range orders {
		totalRevenue = totalRevenue.Add(o.Total)

		day := o.CreatedDate()
		dailyRevenue[day] = dailyRevenue[day].Add(o.Total)
		dailyOrders[day]++

		// Product buckets are keyed by the literal item name: two orders
		// spelling the same product differently land in different buckets.
		for _, item := range o.LineItems {
			p, ok := products[item.Name]
			if !ok {
				p = &entity.ProductSales{Name: item.Name}
				products[item.Name] = p
				productNames = append(productNames, item.Name)
			}
			p.Quantity += item.Quantity
			p.Revenue = p.Revenue.Add(item.Total)
		}

		// Orders with neither a customer id nor a billing email still count
		// toward revenue and dates but get no customer bucket.
		if key := customerKey(&o); key != "" {
			c, ok := customers[key]
			if !ok {
				c = &entity.CustomerSales{Name: customerName(&o.Billing)}
				customers[key] = c
				customerKeys = append(customerKeys, key)
			}
			c.OrderCount++
			c.TotalSpent = c.TotalSpent.Add(o.Total)
			c.AvgOrderValue = c.TotalSpent.Div(decimal.NewFromInt(int64(c.OrderCount)))
		}

		byStatus[o.Status]++
	}

	s := &entity.AnalyticsSummary{
		TotalRevenue:      totalRevenue,
		TotalOrders:       len(orders),
		OrdersByStatus:    byStatus,
		CustomerAnalytics: len(customers),
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(s.TotalOrders)))
	}

	// Date keys are YYYY-MM-DD, so lexical order is chronological order.
	days := make([]string, 0, len(dailyRevenue))
	for day := range dailyRevenue {
		days = append(days, day)
	}
	sort.Strings(days)
	s.DailyRevenue = make([]entity.DailyRevenue, 0, len(days))
	s.DailyOrders = make([]entity.DailyOrders, 0, len(days))
	for _, day := range days {
		s.DailyRevenue = append(s.DailyRevenue, entity.DailyRevenue{Date: day, Revenue: dailyRevenue[day]})
		s.DailyOrders = append(s.DailyOrders, entity.DailyOrders{Date: day, Orders: dailyOrders[day]})
	}

	// Slices are built in first-seen order and stable-sorted, so ties keep
	// the order the products/customers first appeared in the input.
	sales := make([]entity.ProductSales, 0, len(productNames))
	for _, name := range productNames {
		sales = append(sales, *products[name])
	}
	byQuantity := append([]entity.ProductSales(nil), sales...)
	sort.SliceStable(byQuantity, func(i, j int) bool {
		return byQuantity[i].Quantity > byQuantity[j].Quantity
	})
	s.TopProducts = truncate(byQuantity, topListSize)
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Revenue.GreaterThan(sales[j].Revenue)
	})
	s.SalesProducts = sales

	spenders := make([]entity.CustomerSales, 0, len(customerKeys))
	for _, key := range customerKeys {
		spenders = append(spenders, *customers[key])
	}
	sort.SliceStable(spenders, func(i, j int) bool {
		return spenders[i].TotalSpent.GreaterThan(spenders[j].TotalSpent)
	})
	s.TopCustomers = truncate(spenders, topListSize)

	return s
}

// customerKey groups orders by customer id when the store knows the customer,
// falling back to the billing email for guest checkouts.
func customerKey(o *entity.Order) string {
	if o.CustomerID != 0 {
		return strconv.FormatInt(o.CustomerID, 10)
	}
	return o.Billing.Email
}

func customerName(b *entity.Billing) string {
	if b.FirstName != "" || b.LastName != "" {
		return strings.TrimSpace(b.FirstName + " " + b.LastName)
	}
	return "Guest (" + b.Email + ")"
}

func truncate[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
