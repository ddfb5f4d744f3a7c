package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/eventlog"
	"orderdesk/internal/adapters/out/memstore"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	echo  *echo.Echo
	store *memstore.Store
	log   *eventlog.Log
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.NewStore()
	log := eventlog.NewLog(100)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	policy := order.DefaultTransitionPolicy()

	listHandler := queries.NewListOrdersQueryHandler(store)
	server := httpadapter.NewServer(
		commands.NewChangeOrderStatusCommandHandler(store, policy, log, logger),
		commands.NewAttachTrackingCommandHandler(store),
		commands.NewBulkChangeStatusCommandHandler(store, policy, log, commands.BulkConfig{}, logger),
		listHandler,
		queries.NewOrderStatisticsQueryHandler(store),
		queries.NewActivityFeedQueryHandler(log),
		queries.NewExportOrdersQueryHandler(listHandler),
		nil,
		time.UTC,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return &testEnv{echo: e, store: store, log: log}
}

func (env *testEnv) seedOrder(t *testing.T, orderNumber string, totalCents int64) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Jamie Rivera", "jamie@example.com", "")
	require.NoError(t, err)
	address, err := order.NewAddress(
		"Jamie Rivera", "42 Harbor Ave", "Portland", "OR", "97201", "US", "")
	require.NoError(t, err)
	item, err := order.NewItem("SKU-1", "Widget", "", 1, kernel.MustNewMoney(totalCents))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), orderNumber, customer, []order.Item{item}, address,
		kernel.MustNewMoney(totalCents),
		kernel.MustNewMoney(0),
		kernel.MustNewMoney(0),
		kernel.MustNewMoney(totalCents),
		"", time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, env.store.Add(context.Background(), o))
	return o
}

func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func TestChangeOrderStatusEndpoint(t *testing.T) {
	t.Run("valid transition commits", func(t *testing.T) {
		env := newTestEnv(t)
		o := env.seedOrder(t, "ORD-1", 5000)

		rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status",
			`{"status":"processing"}`)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		got, err := env.store.Get(context.Background(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Processing, got.Status())
		assert.Equal(t, 1, env.log.Len())
	})

	t.Run("invalid transition is a conflict", func(t *testing.T) {
		env := newTestEnv(t)
		o := env.seedOrder(t, "ORD-2", 5000)

		rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status",
			`{"status":"delivered"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		got, err := env.store.Get(context.Background(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Pending, got.Status())
	})

	t.Run("unknown order is a 404", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status",
			`{"status":"processing"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown status is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		o := env.seedOrder(t, "ORD-3", 5000)

		rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status",
			`{"status":"teleported"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBulkChangeStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	o := env.seedOrder(t, "ORD-4", 5000)
	missing := kernel.NewUUID()

	rec := env.do(http.MethodPost, "/api/v1/orders/status",
		`{"order_ids":["`+o.ID().String()+`","`+missing.String()+`"],"status":"processing"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Succeeded []string `json:"succeeded"`
		Failed    []struct {
			OrderID string `json:"order_id"`
			Reason  string `json:"reason"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	require.Len(t, response.Succeeded, 1)
	assert.Equal(t, o.ID().String(), response.Succeeded[0])
	require.Len(t, response.Failed, 1)
	assert.Equal(t, missing.String(), response.Failed[0].OrderID)
	assert.Equal(t, "not_found", response.Failed[0].Reason)
}

func TestGetOrdersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "ORD-5", 2000)
	env.seedOrder(t, "ORD-6", 8000)

	t.Run("filter by minimum total", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/orders?min_total=5000", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var response []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response, 1)
		assert.Equal(t, "ORD-6", response[0]["order_number"])
	})

	t.Run("unknown sort key is a 400", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/orders?sort=sideways", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExportOrdersEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedOrder(t, "ORD-7", 5000)

	rec := env.do(http.MethodGet, "/api/v1/orders/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "orders.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Order ID,Order Number"))
	assert.Contains(t, lines[1], "ORD-7")
}

func TestActivityFeedEndpoint(t *testing.T) {
	env := newTestEnv(t)
	o := env.seedOrder(t, "ORD-8", 5000)

	rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status",
		`{"status":"processing"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/activity?limit=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "ORD-8", entries[0]["order_number"])
	assert.Equal(t, "processing", entries[0]["status"])
}

func TestAttachTrackingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	o := env.seedOrder(t, "ORD-9", 5000)

	rec := env.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/tracking",
		`{"tracking_number":"1Z999"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	got, err := env.store.Get(context.Background(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, "1Z999", got.TrackingNumber())
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
