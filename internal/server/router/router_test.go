package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mamadbah2/farmshop/internal/config"
	"github.com/mamadbah2/farmshop/internal/repository/sheets"
	"github.com/mamadbah2/farmshop/internal/server/handlers"
	"github.com/mamadbah2/farmshop/internal/service/auth"
	"github.com/mamadbah2/farmshop/internal/service/shop"
	"github.com/mamadbah2/farmshop/internal/service/syncing"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Warning string          `json:"warning"`
	Token   string          `json:"token"`
}

type testServer struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	authSvc, err := auth.NewService(config.AuthConfig{
		Users:     []config.UserCredential{{Username: "lizette", Password: "winkel", DisplayName: "Lizette"}},
		JWTSecret: "router-test",
	}, logger)
	require.NoError(t, err)

	now := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	shopSvc := shop.NewService(syncing.NewClient(sheets.NewMemoryRepository(), logger), nil, shop.Options{
		DecrementOnSale: true,
		Now:             func() time.Time { return now },
	}, logger)
	shopSvc.Load(context.Background())

	engine := New(handlers.NewAuthHandler(authSvc, logger), handlers.NewShopHandler(shopSvc, logger), logger)
	return &testServer{t: t, h: engine}
}

func (s *testServer) do(method, path string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func (s *testServer) login() {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "lizette", "password": "winkel"})
	require.Equal(s.t, http.StatusOK, code)
	require.NotEmpty(s.t, env.Token)
	s.token = env.Token
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAPIRequiresToken(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/api/stock", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "lizette", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	s.token = "garbage"
	code, _ = s.do(http.MethodGet, "/api/stock", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCheckoutOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.login()

	// Seed item 2 sells at 45.50.
	code, _ := s.do(http.MethodPost, "/api/cart/lines", map[string]int{"itemId": 2})
	require.Equal(t, http.StatusOK, code)
	code, env := s.do(http.MethodPut, "/api/cart/lines/2", map[string]int{"quantity": 2})
	require.Equal(t, http.StatusOK, code)

	var cart struct {
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, "91.00", cart.Total)

	code, env = s.do(http.MethodPost, "/api/cart/checkout", map[string]int{"workerId": 1})
	require.Equal(t, http.StatusCreated, code)
	var txns []struct {
		WorkerName string `json:"workerName"`
		Total      string `json:"total"`
		Date       string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &txns))
	require.Len(t, txns, 1)
	assert.Equal(t, "91", txns[0].Total)
	assert.Equal(t, "Johannes Mkhize", txns[0].WorkerName)

	code, env = s.do(http.MethodGet, "/api/reports/dashboard?start=2025-03-14&end=2025-03-14", nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		PeriodSales            string `json:"periodSales"`
		PeriodTransactionCount int    `json:"periodTransactionCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, "91", stats.PeriodSales)
	assert.Equal(t, 1, stats.PeriodTransactionCount)

	code, env = s.do(http.MethodPost, "/api/cart/checkout", map[string]int{"workerId": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.NotEmpty(t, env.Error)
}

func TestCheckoutRejectsOversell(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, _ := s.do(http.MethodPost, "/api/cart/lines", map[string]int{"itemId": 3})
	require.Equal(t, http.StatusOK, code)
	code, env := s.do(http.MethodPut, "/api/cart/lines/3", map[string]int{"quantity": 6})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error, "Soap Bar")

	code, _ = s.do(http.MethodPut, "/api/cart/lines/99", map[string]int{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, "/api/cart/checkout", map[string]int{})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestStocktakeOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, _ := s.do(http.MethodPost, "/api/stocktakes/draft", nil)
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodPut, "/api/stocktakes/draft/items/1", map[string]int{"actualQty": 48})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPut, "/api/stocktakes/draft/items/1", map[string]int{"actualQty": -1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(http.MethodPost, "/api/stocktakes/draft/commit", map[string]string{"type": "annual"})
	require.Equal(t, http.StatusCreated, code)
	var st struct {
		ID                 int    `json:"id"`
		Type               string `json:"type"`
		TotalVarianceValue string `json:"totalVarianceValue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 1, st.ID)
	assert.Equal(t, "annual", st.Type)
	assert.Equal(t, "-179.98", st.TotalVarianceValue)

	code, _ = s.do(http.MethodGet, "/api/stocktakes/draft", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/reports/stocktakes", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCheckoutWithoutBodyNeedsWorker(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, _ := s.do(http.MethodPost, "/api/cart/lines", map[string]int{"itemId": 1})
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(http.MethodPost, "/api/cart/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error, "worker")
}

func TestStocktakeCommitDate(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, _ := s.do(http.MethodPost, "/api/stocktakes/draft", nil)
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/stocktakes/draft/commit", map[string]string{"date": "28-02-2025"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(http.MethodPost, "/api/stocktakes/draft/commit", map[string]string{"date": "2025-02-28"})
	require.Equal(t, http.StatusCreated, code)
	var st struct {
		Date time.Time `json:"date"`
		Type string    `json:"type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "2025-02-28", st.Date.Format("2006-01-02"))
	assert.Equal(t, "monthly", st.Type)

	code, _ = s.do(http.MethodPost, "/api/stocktakes/draft", nil)
	require.Equal(t, http.StatusCreated, code)
	code, env = s.do(http.MethodPost, "/api/stocktakes/draft/commit", nil)
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "2025-03-14", st.Date.Format("2006-01-02"))
}

func TestTransactionsRejectsBadRange(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, _ := s.do(http.MethodGet, "/api/transactions?start=14-03-2025", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
