package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinBoard/internal/service/provider"
	"FinBoard/internal/usecase"
	"FinBoard/pkg/cache"
	xlogger "FinBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newHandlerFixture(t *testing.T, providerURL string) *echo.Echo {
	t.Helper()
	logger := testLogger(t)
	client := provider.NewClient(providerURL, "k", time.Second)
	mem := cache.NewMemoryCache(cache.WithMemoryCleanup(0))
	board := usecase.NewIndicatorBoard(client, mem, time.Hour, logger, nil)
	financials := usecase.NewFinancials(client, mem, time.Hour, logger)

	h := NewDashboardHandler(logger, nil, board, nil, financials)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func TestIndicatorsEnvelope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"date":"2025-07-01","value":3.0}]`))
	}))
	defer upstream.Close()

	e := newHandlerFixture(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/indicators", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success   bool            `json:"success"`
		Cached    bool            `json:"cached"`
		Timestamp string          `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if !body.Success || body.Cached {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	if body.Timestamp == "" || len(body.Data) == 0 {
		t.Fatalf("incomplete envelope: %s", rec.Body.String())
	}
}

func TestEarningsMissingTicker(t *testing.T) {
	e := newHandlerFixture(t, "http://unused")
	req := httptest.NewRequest(http.MethodGet, "/api/earnings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool            `json:"success"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if body.Success || len(body.Error) == 0 {
		t.Fatalf("expected error envelope: %s", rec.Body.String())
	}
}

func TestEarningsUpstreamErrorMapsStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	e := newHandlerFixture(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/earnings?ticker=AAPL", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when no quarter has data, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := newHandlerFixture(t, "http://unused")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	e := newHandlerFixture(t, "http://unused")
	req := httptest.NewRequest(http.MethodPost, "/api/indicators", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
