package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FinBoard/internal/service/provider"
	"FinBoard/internal/services/analysis"
	xhttp "FinBoard/pkg/http"
)

// fakeProvider serves every market data path the analyzer fans out to.
// Paths absent from the map answer 404.
func fakeProvider(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for prefix, body := range bodies {
			if strings.HasPrefix(r.URL.Path, prefix) {
				w.Write([]byte(body))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func newAnalyzerFixture(t *testing.T, providerURL string) *EarningsAnalyzer {
	t.Helper()
	client := provider.NewClient(providerURL, "k", 2*time.Second)
	chart := provider.NewChartClient(providerURL+"/nochart", time.Second)
	sampler := analysis.NewSentimentSampler(client, analysis.SamplerConfig{
		PacingInterval: time.Millisecond,
	}, testLogger(t))
	mem := testMemCache()
	trend := NewTrendUsecase(chart, client, testMemCache(), 5*time.Minute, testLogger(t), nil)
	board := NewIndicatorBoard(client, testMemCache(), time.Hour, testLogger(t), nil)
	return NewEarningsAnalyzer(client, sampler, trend, board, mem, 24*time.Hour, testLogger(t), nil)
}

func TestAnalyzeHappyPath(t *testing.T) {
	ts := fakeProvider(t, map[string]string{
		"/v3/earning-call-transcript/": `[{"symbol":"AAPL","quarter":2,"year":2025,"date":"2025-05-01",
			"content":"body","speakers":[
				{"role":"Chief Executive Officer","text":"We delivered outstanding revenue growth this quarter and expect continued momentum."}]}]`,
		"/v3/quote/": `[{"symbol":"AAPL","price":210.5,"change":2.5,"changesPercentage":1.2,"volume":1000}]`,
		"/v3/historical-price-full/": `{"symbol":"AAPL","historical":[
			{"date":"2025-01-02","close":110},{"date":"2025-01-01","close":100}]}`,
		"/v4/economic":        `[{"date":"2025-07-01","value":2.5}]`,
		"/v4/sentiment-score": `{"label":"POSITIVE","score":0.9}`,
	})
	defer ts.Close()

	a := newAnalyzerFixture(t, ts.URL)
	res, cached, err := a.Analyze(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if cached {
		t.Fatalf("first call must not be cached")
	}
	if res.Ticker != "AAPL" {
		t.Fatalf("ticker not normalized: %q", res.Ticker)
	}
	if res.StockData == nil || res.StockData.Price != 210.5 {
		t.Fatalf("unexpected stock data: %+v", res.StockData)
	}
	if res.SentimentAnalysis == nil {
		t.Fatalf("sentiment missing")
	}
	if res.HistoricalTrend == nil || res.HistoricalTrend.Statistics.TrendPercent != 10 {
		t.Fatalf("unexpected trend: %+v", res.HistoricalTrend)
	}
	if res.Recommendation == nil || res.Recommendation.Recommendation == "" {
		t.Fatalf("recommendation missing")
	}
	if res.Recommendation.Disclaimer == "" {
		t.Fatalf("disclaimer missing")
	}
	if res.EarningsData == nil || res.EarningsData["quarter"] == nil {
		t.Fatalf("earnings metadata missing: %v", res.EarningsData)
	}

	// second call comes from cache
	res2, cached, err := a.Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("cached analyze failed: %v", err)
	}
	if !cached {
		t.Fatalf("second call should hit the cache")
	}
	if res2.Timestamp != res.Timestamp {
		t.Fatalf("cached payload diverged")
	}
}

func TestAnalyzeDegradesWithoutTranscript(t *testing.T) {
	ts := fakeProvider(t, map[string]string{
		"/v3/quote/": `[{"symbol":"AAPL","price":210.5,"change":2.5,"changesPercentage":1.2,"volume":1000}]`,
	})
	defer ts.Close()

	a := newAnalyzerFixture(t, ts.URL)
	res, _, err := a.Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("one available source must be enough: %v", err)
	}
	if res.StockData == nil {
		t.Fatalf("quote missing")
	}
	if res.SentimentAnalysis != nil {
		t.Fatalf("sentiment should be absent without a transcript")
	}
	if res.EarningsData != nil {
		t.Fatalf("earnings metadata should be absent without a transcript")
	}
	if res.Recommendation == nil {
		t.Fatalf("recommendation is always present")
	}
}

func TestAnalyzeAllSourcesFailed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	a := newAnalyzerFixture(t, ts.URL)
	_, _, err := a.Analyze(context.Background(), "AAPL")
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "ERR_ALL_SOURCES_FAILED" {
		t.Fatalf("expected ERR_ALL_SOURCES_FAILED, got %s", appErr.Code)
	}
	sources, ok := appErr.Params["sources"].(map[string]interface{})
	if !ok {
		t.Fatalf("sources param missing: %+v", appErr.Params)
	}
	for _, name := range []string{"transcript", "stockData", "trend", "indicators"} {
		if _, ok := sources[name]; !ok {
			t.Fatalf("source %s missing from %v", name, sources)
		}
	}
}

func TestAnalyzeNoAPIKey(t *testing.T) {
	client := provider.NewClient("http://unused", "", time.Second)
	a := NewEarningsAnalyzer(client, nil, nil, nil, testMemCache(), time.Hour, testLogger(t), nil)

	_, _, err := a.Analyze(context.Background(), "AAPL")
	var appErr *xhttp.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "ERR_CONFIG" {
		t.Fatalf("expected ERR_CONFIG, got %s", appErr.Code)
	}
}
