package analytics

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(id int64, date, status, total string, items ...entity.LineItem) entity.Order {
	return entity.Order{
		ID:          id,
		Status:      status,
		DateCreated: date + "T10:30:00",
		Total:       dec(total),
		LineItems:   items,
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)

	assert.True(t, s.TotalRevenue.IsZero())
	assert.Equal(t, 0, s.TotalOrders)
	assert.True(t, s.AverageOrderValue.IsZero())
	assert.Empty(t, s.DailyRevenue)
	assert.Empty(t, s.DailyOrders)
	assert.Empty(t, s.TopProducts)
	assert.Empty(t, s.SalesProducts)
	assert.Empty(t, s.TopCustomers)
	assert.Empty(t, s.OrdersByStatus)
	assert.Equal(t, 0, s.CustomerAnalytics)
}

func TestAggregateTwoOrdersSameDay(t *testing.T) {
	orders := []entity.Order{
		order(1, "2024-01-01", "completed", "100", entity.LineItem{Name: "Widget", Quantity: 1, Total: dec("100")}),
		order(2, "2024-01-01", "cancelled", "50", entity.LineItem{Name: "Widget", Quantity: 2, Total: dec("50")}),
	}

	s := Aggregate(orders)

	assert.Equal(t, "150", s.TotalRevenue.String())
	assert.Equal(t, 2, s.TotalOrders)
	assert.Equal(t, "75", s.AverageOrderValue.String())

	require.Len(t, s.DailyRevenue, 1)
	assert.Equal(t, "2024-01-01", s.DailyRevenue[0].Date)
	assert.Equal(t, "150", s.DailyRevenue[0].Revenue.String())
	require.Len(t, s.DailyOrders, 1)
	assert.Equal(t, 2, s.DailyOrders[0].Orders)

	require.Len(t, s.SalesProducts, 1)
	assert.Equal(t, "Widget", s.SalesProducts[0].Name)
	assert.Equal(t, 3, s.SalesProducts[0].Quantity)
	assert.Equal(t, "150", s.SalesProducts[0].Revenue.String())

	assert.Equal(t, map[string]int{"completed": 1, "cancelled": 1}, s.OrdersByStatus)
}

func TestAggregateStatusNeverFiltersRevenue(t *testing.T) {
	orders := []entity.Order{
		order(1, "2024-02-01", "completed", "10"),
		order(2, "2024-02-01", "cancelled", "20"),
		order(3, "2024-02-02", "failed", "30"),
		order(4, "2024-02-02", "refunded", "40"),
	}

	s := Aggregate(orders)

	assert.Equal(t, "100", s.TotalRevenue.String())
	assert.Equal(t, 4, s.TotalOrders)
	require.Len(t, s.DailyRevenue, 2)
	assert.Equal(t, "30", s.DailyRevenue[0].Revenue.String())
	assert.Equal(t, "70", s.DailyRevenue[1].Revenue.String())
}

func TestAggregateDailySumsMatchTotals(t *testing.T) {
	var orders []entity.Order
	for i := 0; i < 30; i++ {
		date := fmt.Sprintf("2024-03-%02d", i%10+1)
		orders = append(orders, order(int64(i), date, "processing", fmt.Sprintf("%d.5", i+1)))
	}

	s := Aggregate(orders)

	revenueSum := decimal.Zero
	orderSum := 0
	for _, d := range s.DailyRevenue {
		revenueSum = revenueSum.Add(d.Revenue)
	}
	for _, d := range s.DailyOrders {
		orderSum += d.Orders
	}
	assert.True(t, revenueSum.Equal(s.TotalRevenue), "daily revenue sums to %s, total is %s", revenueSum, s.TotalRevenue)
	assert.Equal(t, s.TotalOrders, orderSum)
	assert.True(t, s.AverageOrderValue.Equal(s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalOrders)))))

	// dates come out ascending
	for i := 1; i < len(s.DailyRevenue); i++ {
		assert.Less(t, s.DailyRevenue[i-1].Date, s.DailyRevenue[i].Date)
	}
}

func TestAggregateTopProducts(t *testing.T) {
	var orders []entity.Order
	for i := 0; i < 15; i++ {
		name := fmt.Sprintf("Product %c", 'A'+i)
		orders = append(orders, order(int64(i), "2024-01-05", "completed", "10",
			entity.LineItem{Name: name, Quantity: i + 1, Total: dec("10")}))
	}

	s := Aggregate(orders)

	require.Len(t, s.TopProducts, 10)
	assert.Len(t, s.SalesProducts, 15)
	assert.Equal(t, "Product O", s.TopProducts[0].Name)
	for i := 1; i < len(s.TopProducts); i++ {
		assert.GreaterOrEqual(t, s.TopProducts[i-1].Quantity, s.TopProducts[i].Quantity)
	}
	for i := 1; i < len(s.SalesProducts); i++ {
		assert.True(t, s.SalesProducts[i-1].Revenue.GreaterThanOrEqual(s.SalesProducts[i].Revenue))
	}
}

func TestAggregateTiesKeepFirstSeenOrder(t *testing.T) {
	orders := []entity.Order{
		order(1, "2024-01-01", "completed", "10", entity.LineItem{Name: "Soap", Quantity: 2, Total: dec("10")}),
		order(2, "2024-01-01", "completed", "10", entity.LineItem{Name: "Shampoo", Quantity: 2, Total: dec("10")}),
		order(3, "2024-01-01", "completed", "10", entity.LineItem{Name: "Balm", Quantity: 2, Total: dec("10")}),
	}

	s := Aggregate(orders)

	require.Len(t, s.TopProducts, 3)
	assert.Equal(t, "Soap", s.TopProducts[0].Name)
	assert.Equal(t, "Shampoo", s.TopProducts[1].Name)
	assert.Equal(t, "Balm", s.TopProducts[2].Name)
}

func TestAggregateCustomers(t *testing.T) {
	o1 := order(1, "2024-01-01", "completed", "100")
	o1.CustomerID = 7
	o1.Billing = entity.Billing{FirstName: "Priya", LastName: "Raman", Email: "priya@example.com"}

	o2 := order(2, "2024-01-02", "completed", "50")
	o2.CustomerID = 7
	o2.Billing = entity.Billing{FirstName: "Priya", LastName: "Raman", Email: "priya@example.com"}

	o3 := order(3, "2024-01-02", "completed", "30")
	o3.Billing = entity.Billing{Email: "a@b.com"}

	// no id and no email: contributes to revenue but not to customer buckets
	o4 := order(4, "2024-01-03", "completed", "20")

	s := Aggregate([]entity.Order{o1, o2, o3, o4})

	assert.Equal(t, 2, s.CustomerAnalytics)
	require.Len(t, s.TopCustomers, 2)

	top := s.TopCustomers[0]
	assert.Equal(t, "Priya Raman", top.Name)
	assert.Equal(t, 2, top.OrderCount)
	assert.Equal(t, "150", top.TotalSpent.String())
	assert.Equal(t, "75", top.AvgOrderValue.String())

	guest := s.TopCustomers[1]
	assert.Equal(t, "Guest (a@b.com)", guest.Name)
	assert.Equal(t, 1, guest.OrderCount)

	assert.Equal(t, "200", s.TotalRevenue.String())
}

func TestAggregateCombinableAcrossPages(t *testing.T) {
	var page1, page2 []entity.Order
	for i := 0; i < 100; i++ {
		o := order(int64(i), fmt.Sprintf("2024-04-%02d", i%5+1), "completed", "12.30",
			entity.LineItem{Name: fmt.Sprintf("Item %d", i%7), Quantity: 1, Total: dec("12.30")})
		o.CustomerID = int64(i%11 + 1)
		page1 = append(page1, o)
	}
	for i := 100; i < 200; i++ {
		o := order(int64(i), fmt.Sprintf("2024-04-%02d", i%5+3), "pending", "7.70",
			entity.LineItem{Name: fmt.Sprintf("Item %d", i%7), Quantity: 2, Total: dec("7.70")})
		o.CustomerID = int64(i%11 + 1)
		page2 = append(page2, o)
	}

	all := Aggregate(append(append([]entity.Order{}, page1...), page2...))
	s1 := Aggregate(page1)
	s2 := Aggregate(page2)

	assert.True(t, all.TotalRevenue.Equal(s1.TotalRevenue.Add(s2.TotalRevenue)))
	assert.Equal(t, all.TotalOrders, s1.TotalOrders+s2.TotalOrders)

	sumDaily := func(s *entity.AnalyticsSummary) map[string]decimal.Decimal {
		m := map[string]decimal.Decimal{}
		for _, d := range s.DailyRevenue {
			m[d.Date] = d.Revenue
		}
		return m
	}
	merged := sumDaily(s1)
	for date, rev := range sumDaily(s2) {
		merged[date] = merged[date].Add(rev)
	}
	assert.Equal(t, len(all.DailyRevenue), len(merged))
	for _, d := range all.DailyRevenue {
		assert.True(t, d.Revenue.Equal(merged[d.Date]), "date %s", d.Date)
	}

	productRevenue := func(s *entity.AnalyticsSummary) map[string]decimal.Decimal {
		m := map[string]decimal.Decimal{}
		for _, p := range s.SalesProducts {
			m[p.Name] = p.Revenue
		}
		return m
	}
	mergedProducts := productRevenue(s1)
	for name, rev := range productRevenue(s2) {
		mergedProducts[name] = mergedProducts[name].Add(rev)
	}
	for _, p := range all.SalesProducts {
		assert.True(t, p.Revenue.Equal(mergedProducts[p.Name]), "product %s", p.Name)
	}

	for status, count := range all.OrdersByStatus {
		assert.Equal(t, count, s1.OrdersByStatus[status]+s2.OrdersByStatus[status], "status %s", status)
	}
}
