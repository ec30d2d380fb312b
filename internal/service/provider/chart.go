package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"FinBoard/internal/domain/models"
	xhttp "FinBoard/pkg/http"
)

// ChartClient fetches daily closes from the public finance charting API.
// The charting API is keyless.
type ChartClient struct {
	baseURL string
	http    *xhttp.Client
}

// NewChartClient creates a chart API client.
func NewChartClient(baseURL string, timeout time.Duration) *ChartClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChartClient{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type chartWire struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// DailyCloses fetches one month of daily closes for ticker, oldest first.
// Trading halts produce null closes in the feed; those days are skipped.
func (cc *ChartClient) DailyCloses(ctx context.Context, ticker string) ([]models.PricePoint, error) {
	var wire chartWire
	u := cc.baseURL + "/v8/finance/chart/" + url.PathEscape(ticker)
	err := cc.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		QueryParams: map[string][]string{
			"range":    {"1mo"},
			"interval": {"1d"},
		},
	}, &wire)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w: %v", ticker, ErrNetwork, err)
	}

	if len(wire.Chart.Result) == 0 || len(wire.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: empty result: %w", ticker, ErrNotFound)
	}

	res := wire.Chart.Result[0]
	closes := res.Indicators.Quote[0].Close
	points := make([]models.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Price: *closes[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("chart %s: no usable closes: %w", ticker, ErrNotFound)
	}
	return points, nil
}
