package woo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *Config {
	return &Config{
		StoreURL:       url,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		RetryWaitTime:  time.Millisecond,
	}
}

func ordersJSON(from, count int) string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := from + i
		items = append(items, fmt.Sprintf(`{
			"id": %d,
			"status": "completed",
			"date_created": "2024-01-%02dT09:00:00",
			"total": "25.50",
			"customer_id": %d,
			"billing": {"first_name": "Asha", "last_name": "K", "email": "asha@example.com"},
			"line_items": [{"name": "Herbal Soap", "quantity": 1, "total": "25.50"}]
		}`, id, id%28+1, id%5))
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestFetchAllOrdersPaginates(t *testing.T) {
	var pagesSeen []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)
		require.Equal(t, "ck_test", r.URL.Query().Get("consumer_key"))
		require.Equal(t, "any", r.URL.Query().Get("status"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pagesSeen = append(pagesSeen, page)
		w.Header().Set("Content-Type", "application/json")
		switch page {
		case 1, 2:
			fmt.Fprint(w, ordersJSON((page-1)*100, 100))
		default:
			fmt.Fprint(w, "[]")
		}
	}))
	defer server.Close()

	cli, err := New(testConfig(server.URL))
	require.NoError(t, err)

	orders, err := cli.FetchAllOrders(context.Background(), time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.Len(t, orders, 200)
	assert.Equal(t, []int{1, 2, 3}, pagesSeen)
	assert.Equal(t, int64(0), orders[0].ID)
	assert.Equal(t, "25.5", orders[0].Total.String())
	assert.Equal(t, "Herbal Soap", orders[0].LineItems[0].Name)
}

func TestFetchAllOrdersRetriesOnRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	cli, err := New(testConfig(server.URL))
	require.NoError(t, err)

	orders, err := cli.FetchAllOrders(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 3, calls)
}

func TestFetchAllOrdersExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RetryCount = 2
	cli, err := New(cfg)
	require.NoError(t, err)

	_, err = cli.FetchAllOrders(context.Background(), time.Time{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchAllOrdersServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cli, err := New(testConfig(server.URL))
	require.NoError(t, err)

	_, err = cli.FetchAllOrders(context.Background(), time.Time{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGetRecentOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "date", r.URL.Query().Get("orderby"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, ordersJSON(0, 5))
	}))
	defer server.Close()

	cli, err := New(testConfig(server.URL))
	require.NoError(t, err)

	orders, err := cli.GetRecentOrders(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Len(t, orders, 5)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&Config{StoreURL: "https://example.com"})
	require.Error(t, err)
}
