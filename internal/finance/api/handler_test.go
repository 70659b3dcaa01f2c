package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xxz807/cargofin/internal/finance/adapter/memory"
	"github.com/xxz807/cargofin/internal/finance/domain"
	"github.com/xxz807/cargofin/internal/finance/service"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func snapshot() memory.Snapshot {
	rec := func(id string, c domain.PaymentClassification, total int64, created time.Time) domain.ShipmentRecord {
		return domain.ShipmentRecord{
			ID:                    id,
			CreatedAt:             created,
			SenderID:              "sender-" + id,
			ReceiverID:            "receiver-" + id,
			TotalAmount:           decimal.NewFromInt(total),
			PaymentClassification: c,
			LifecycleStatus:       domain.Delivered,
		}
	}
	return memory.Snapshot{
		Shipments: []domain.ShipmentRecord{
			rec("s1", domain.ToPay, 1000, jan1),
			rec("s2", domain.ToPay, 300, jan1.AddDate(0, 0, 10)),
			rec("s3", domain.Paid, 500, jan1.AddDate(0, 0, 20)),
		},
		Expenses: []domain.ExpenseRecord{
			{ID: "e1", Date: jan1, Vendor: "Shell", Category: "fuel", Amount: decimal.NewFromInt(80)},
		},
		Articles:      []domain.Article{{ID: "a1", Name: "Cement", BaseRate: decimal.NewFromInt(100)}},
		CustomerRates: []domain.CustomerArticleRate{{CustomerID: "acme", ArticleID: "a1", Rate: decimal.NewFromInt(90)}},
	}
}

func newRouter(shipments domain.ShipmentSource, expenses domain.ExpenseSource, rates domain.RateSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewFinanceService(zap.NewNop(), shipments, expenses, rates, service.Options{
		Clock: func() time.Time { return time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC) },
	})
	r := gin.New()
	NewFinanceHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	AsOf       time.Time         `json:"as_of"`
	Items      []json.RawMessage `json:"items"`
	TotalCount int               `json:"total_count"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Summary    struct {
		Count       int    `json:"count"`
		TotalAmount string `json:"total_amount"`
	} `json:"summary"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestListInvoices(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	w := get(t, r, "/api/v1/finance/invoices?sort=amount&dir=desc&page_size=2")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[listResponse](t, w)
	assert.Equal(t, 3, body.TotalCount)
	assert.Equal(t, 2, body.TotalPages)
	assert.Len(t, body.Items, 2)
	assert.Equal(t, "1800", body.Summary.TotalAmount)

	var first domain.Invoice
	require.NoError(t, json.Unmarshal(body.Items[0], &first))
	assert.Equal(t, "INV-s1", first.InvoiceNumber)
}

func TestListInvoices_DateWindowIncludesEndDay(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	w := get(t, r, "/api/v1/finance/invoices?from=2024-01-11&to=2024-01-21")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[listResponse](t, w)
	assert.Equal(t, 2, body.TotalCount)
}

func TestListReceivables_NowOverride(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	w := get(t, r, "/api/v1/finance/receivables?now=2024-01-05&bucket=current")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[listResponse](t, w)
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), body.AsOf)
}

func TestListViews_BadRequest(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	urls := []string{
		"/api/v1/finance/invoices?sort=colour",
		"/api/v1/finance/invoices?dir=sideways",
		"/api/v1/finance/invoices?from=01/02/2024",
		"/api/v1/finance/invoices?from=2024-02-01&to=2024-01-01",
		"/api/v1/finance/receivables?bucket=120+",
		"/api/v1/finance/payments?page=two",
		"/api/v1/finance/ledger?now=tomorrow",
		"/api/v1/finance/dashboard?now=tomorrow",
	}
	for _, url := range urls {
		w := get(t, r, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)

		body := decode[ErrorResponse](t, w)
		assert.NotEmpty(t, body.Error, url)
	}
}

func TestListViews_SortMustBelongToView(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	// days_overdue 只对应收/应付有效
	assert.Equal(t, http.StatusOK, get(t, r, "/api/v1/finance/receivables?sort=days_overdue").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/finance/payments?sort=days_overdue").Code)
}

func TestListViews_PageOutOfRange(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	w := get(t, r, "/api/v1/finance/ledger?page=9")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[listResponse](t, w)
	assert.NotNil(t, body.Items)
	assert.Empty(t, body.Items)
	assert.Equal(t, 9, body.Page)
}

func TestDashboard(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	w := get(t, r, "/api/v1/finance/dashboard")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]json.RawMessage](t, w)
	assert.Contains(t, body, "revenue")
	assert.Contains(t, body, "receivables")
	assert.JSONEq(t, `"500"`, string(body["collected"]))
}

func TestCustomerRates(t *testing.T) {
	store := memory.NewStore(snapshot())
	r := newRouter(store, store, store)

	w := get(t, r, "/api/v1/finance/customers/acme/rates")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		CustomerID string            `json:"customer_id"`
		Items      []domain.RateView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "acme", body.CustomerID)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "10% discount", body.Items[0].Label)
}

type brokenSource struct{}

func (brokenSource) ListShipments(context.Context) ([]domain.ShipmentRecord, error) {
	return nil, errors.New("db down")
}

func (brokenSource) ListExpenses(context.Context) ([]domain.ExpenseRecord, error) {
	return nil, errors.New("db down")
}

func (brokenSource) ListArticles(context.Context) ([]domain.Article, error) {
	return nil, errors.New("db down")
}

func (brokenSource) ListCustomerRates(context.Context, string) ([]domain.CustomerArticleRate, error) {
	return nil, errors.New("db down")
}

func TestSourceFailure(t *testing.T) {
	src := brokenSource{}
	r := newRouter(src, src, src)

	for _, url := range []string{
		"/api/v1/finance/invoices",
		"/api/v1/finance/dashboard",
		"/api/v1/finance/customers/acme/rates",
	} {
		w := get(t, r, url)
		assert.Equal(t, http.StatusInternalServerError, w.Code, url)

		body := decode[ErrorResponse](t, w)
		assert.NotContains(t, body.Error, "db down", url)
	}
}
