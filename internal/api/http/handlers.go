package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/vaseegrahveda/dashboard-manager/internal/entity"
	mw "github.com/vaseegrahveda/dashboard-manager/internal/middleware"
)

// defaultAnalyticsWindow is used when the request carries no date bounds.
const defaultAnalyticsWindow = 30 * 24 * time.Hour

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("can't encode response", slog.String("err", err.Error()))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

type transactionRequest struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"paymentMode"`
	Remark      string          `json:"remark"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't list transactions",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "Error fetching transactions")
		return
	}
	if list == nil {
		list = []entity.Transaction{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.CheckLedgerWrite(mw.GetClientIP(r.Context())); err != nil {
		respondError(w, http.StatusTooManyRequests, err.Error())
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDateParam(req.Date, false)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		return
	}

	ti := &entity.TransactionInsert{
		Date:        date,
		Type:        req.Type,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Description: req.Description,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Remark:      req.Remark,
	}
	if err := ti.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.ledger.AddTransaction(r.Context(), ti)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't add transaction",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "Error adding transaction")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// csvHeader matches the export format the dashboard's spreadsheet users
// already rely on.
const csvHeader = "Date,Type,Category,Sub-Category,Description,Amount,Payment Mode,Remark"

func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	list, err := s.ledger.ListTransactions(r.Context())
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't list transactions for export",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "Error fetching transactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenditures.csv"`)
	fmt.Fprintln(w, csvHeader)
	for _, t := range list {
		// Values are joined verbatim; embedded commas are not escaped.
		fmt.Fprintln(w, strings.Join([]string{
			t.Date.Format("2006-01-02"),
			t.Type,
			t.Category,
			t.SubCategory,
			t.Description,
			t.Amount.String(),
			t.PaymentMode,
			t.Remark,
		}, ","))
	}
}

func (s *Server) handleOrderAnalytics(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.CheckAnalyticsRefresh(mw.GetClientIP(r.Context())); err != nil {
		respondError(w, http.StatusTooManyRequests, err.Error())
		return
	}

	now := time.Now().UTC()
	after := now.Add(-defaultAnalyticsWindow)
	before := now

	var err error
	if v := r.URL.Query().Get("after"); v != "" {
		if after, err = parseDateParam(v, false); err != nil {
			respondError(w, http.StatusBadRequest, "invalid after date")
			return
		}
	}
	if v := r.URL.Query().Get("before"); v != "" {
		if before, err = parseDateParam(v, true); err != nil {
			respondError(w, http.StatusBadRequest, "invalid before date")
			return
		}
	}
	if after.After(before) {
		respondError(w, http.StatusBadRequest, "invalid date range: start date is after end date")
		return
	}

	summary, err := s.dash.Refresh(r.Context(), after, before)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't refresh order analytics",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusBadGateway, "Error fetching orders from the store")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCachedAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, period, ok := s.dash.Summary()
	if !ok {
		respondError(w, http.StatusNotFound, "no analytics summary computed yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"summary": summary,
	})
}

func (s *Server) handleRecentOrders(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	page := queryInt(r, "page", 1)

	orders, err := s.orders.GetRecentOrders(r.Context(), limit, page)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't fetch recent orders",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusBadGateway, "Error fetching orders from the store")
		return
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// parseDateParam accepts either a plain calendar date or a full RFC 3339
// timestamp. A plain end date is pushed to the end of its day so the bound
// stays inclusive.
func parseDateParam(v string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
