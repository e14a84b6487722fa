// Package woo is a client for the WooCommerce REST API v3. It owns pagination
// and rate-limit backoff so callers always receive either the complete order
// list for a range or an error, never a partial page set.
package woo

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
)

const (
	defaultPageSize   = 100
	defaultRetryCount = 3
	defaultRetryWait  = time.Second
	defaultTimeout    = 30 * time.Second
)

// Config holds WooCommerce API credentials and client tuning.
type Config struct {
	StoreURL       string        `mapstructure:"store_url"`
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	PageSize       int           `mapstructure:"page_size"`
	RetryCount     int           `mapstructure:"retry_count"`
	RetryWaitTime  time.Duration `mapstructure:"retry_wait_time"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// Client talks to a single WooCommerce store.
type Client struct {
	cli      *resty.Client
	pageSize int
}

// New builds a Client from config, applying defaults for the tuning knobs.
func New(c *Config) (*Client, error) {
	if c.StoreURL == "" || c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return nil, fmt.Errorf("woocommerce store url, consumer key and consumer secret are required")
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	retryCount := c.RetryCount
	if retryCount <= 0 {
		retryCount = defaultRetryCount
	}
	retryWait := c.RetryWaitTime
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cli := resty.New()
	cli.SetBaseURL(strings.TrimSuffix(c.StoreURL, "/") + "/wp-json/wc/v3")
	cli.SetQueryParams(map[string]string{
		"consumer_key":    c.ConsumerKey,
		"consumer_secret": c.ConsumerSecret,
	})
	cli.SetTimeout(timeout)
	// Retry only on rate limiting; the wait between attempts grows
	// exponentially up to the max.
	cli.SetRetryCount(retryCount)
	cli.SetRetryWaitTime(retryWait)
	cli.SetRetryMaxWaitTime(retryWait * (1 << retryCount))
	cli.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err == nil && r.StatusCode() == http.StatusTooManyRequests
	})

	return &Client{cli: cli, pageSize: pageSize}, nil
}

// FetchAllOrders retrieves every order created in [after, before], paging
// until the API returns an empty page. Any page failing after retries aborts
// the whole fetch; callers never see a partially fetched range.
func (c *Client) FetchAllOrders(ctx context.Context, after, before time.Time) ([]entity.Order, error) {
	var all []entity.Order
	for page := 1; ; page++ {
		orders, err := c.ordersPage(ctx, map[string]string{
			"per_page": strconv.Itoa(c.pageSize),
			"page":     strconv.Itoa(page),
			"after":    after.Format(time.RFC3339),
			"before":   before.Format(time.RFC3339),
			"status":   "any",
		})
		if err != nil {
			return nil, fmt.Errorf("orders page %d: %w", page, err)
		}
		if len(orders) == 0 {
			break
		}
		all = append(all, orders...)
	}

	slog.Default().InfoContext(ctx, "fetched woocommerce orders",
		slog.Int("count", len(all)),
		slog.Time("after", after),
		slog.Time("before", before),
	)
	return all, nil
}

// GetRecentOrders returns one page of orders sorted by date descending.
func (c *Client) GetRecentOrders(ctx context.Context, limit, page int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return c.ordersPage(ctx, map[string]string{
		"per_page": strconv.Itoa(limit),
		"page":     strconv.Itoa(page),
		"orderby":  "date",
		"order":    "desc",
		"status":   "any",
	})
}

// FetchOrdersByStatus returns up to limit orders in the given workflow status.
func (c *Client) FetchOrdersByStatus(ctx context.Context, status string, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	return c.ordersPage(ctx, map[string]string{
		"per_page": strconv.Itoa(limit),
		"status":   status,
	})
}

func (c *Client) ordersPage(ctx context.Context, params map[string]string) ([]entity.Order, error) {
	var orders []entity.Order
	resp, err := c.cli.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&orders).
		Get("/orders")
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("woocommerce responded %d: %s", resp.StatusCode(), resp.String())
	}
	return orders, nil
}
