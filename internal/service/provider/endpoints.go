package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"FinBoard/internal/domain/models"
)

type transcriptWire struct {
	Symbol   string          `json:"symbol"`
	Quarter  int             `json:"quarter"`
	Year     int             `json:"year"`
	Date     string          `json:"date"`
	Content  string          `json:"content"`
	Speakers json.RawMessage `json:"speakers"`
}

// Transcript fetches the most recent earnings-call transcript for ticker.
// The speakers field arrives structured or as a JSON-serialized string
// depending on provider plan; both are carried over and decoding of the
// string form is left to the extractor.
func (c *Client) Transcript(ctx context.Context, ticker string) (*models.TranscriptRecord, error) {
	var wire []transcriptWire
	path := "/v3/earning-call-transcript/" + url.PathEscape(ticker)
	if err := c.FetchJSON(ctx, path, nil, &wire); err != nil {
		return nil, err
	}
	if len(wire) == 0 {
		return nil, fmt.Errorf("%s: empty transcript list: %w", path, ErrNotFound)
	}

	w := wire[0]
	rec := &models.TranscriptRecord{
		Ticker:  w.Symbol,
		Quarter: w.Quarter,
		Year:    w.Year,
		Date:    w.Date,
		Content: w.Content,
	}
	if len(w.Speakers) > 0 {
		var turns []models.SpeakerTurn
		if err := json.Unmarshal(w.Speakers, &turns); err == nil {
			rec.Turns = turns
		} else {
			var raw string
			if err := json.Unmarshal(w.Speakers, &raw); err == nil {
				rec.RawSpeakers = raw
			}
		}
	}
	return rec, nil
}

type quoteWire struct {
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Volume            int64   `json:"volume"`
	MarketCap         float64 `json:"marketCap"`
}

// Quote fetches a real-time price snapshot.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.StockQuote, error) {
	var wire []quoteWire
	path := "/v3/quote/" + url.PathEscape(ticker)
	if err := c.FetchJSON(ctx, path, nil, &wire); err != nil {
		return nil, err
	}
	if len(wire) == 0 {
		return nil, fmt.Errorf("%s: empty quote list: %w", path, ErrNotFound)
	}
	w := wire[0]
	return &models.StockQuote{
		Ticker:        w.Symbol,
		Price:         w.Price,
		Change:        w.Change,
		ChangePercent: w.ChangesPercentage,
		Volume:        w.Volume,
		MarketCap:     w.MarketCap,
	}, nil
}

type historicalWire struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	} `json:"historical"`
}

// DailySeries fetches up to days daily closes, oldest first.
func (c *Client) DailySeries(ctx context.Context, ticker string, days int) ([]models.PricePoint, error) {
	var wire historicalWire
	path := "/v3/historical-price-full/" + url.PathEscape(ticker)
	q := url.Values{"timeseries": {strconv.Itoa(days)}}
	if err := c.FetchJSON(ctx, path, q, &wire); err != nil {
		return nil, err
	}
	if len(wire.Historical) == 0 {
		return nil, fmt.Errorf("%s: empty price series: %w", path, ErrNotFound)
	}

	// provider returns newest first
	points := make([]models.PricePoint, 0, len(wire.Historical))
	for i := len(wire.Historical) - 1; i >= 0; i-- {
		h := wire.Historical[i]
		points = append(points, models.PricePoint{Date: h.Date, Price: h.Close})
	}
	return points, nil
}

type indicatorWire struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// IndicatorObservation is the latest value of one macro series.
type IndicatorObservation struct {
	Value  float64
	Period string
}

// Indicator fetches the latest observation of a named economic series.
func (c *Client) Indicator(ctx context.Context, name string) (*IndicatorObservation, error) {
	var wire []indicatorWire
	q := url.Values{"name": {name}}
	if err := c.FetchJSON(ctx, "/v4/economic", q, &wire); err != nil {
		return nil, err
	}
	if len(wire) == 0 {
		return nil, fmt.Errorf("/v4/economic?name=%s: no observations: %w", name, ErrNotFound)
	}
	return &IndicatorObservation{Value: wire[0].Value, Period: wire[0].Date}, nil
}

type sentimentWire struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ScoreSentence submits one sentence to the sentiment-scoring endpoint.
func (c *Client) ScoreSentence(ctx context.Context, sentence string) (*models.SentimentScore, error) {
	var wire sentimentWire
	q := url.Values{"text": {sentence}}
	if err := c.FetchJSON(ctx, "/v4/sentiment-score", q, &wire); err != nil {
		return nil, err
	}
	return &models.SentimentScore{
		Label: models.SentimentLabel(wire.Label),
		Score: wire.Score,
	}, nil
}

// QuarterlyFinancials fetches raw financial statement fields for one fiscal
// quarter. Callers handle the prior-quarter fallback.
func (c *Client) QuarterlyFinancials(ctx context.Context, ticker string, quarter, year int) (map[string]interface{}, error) {
	var wire []map[string]interface{}
	path := "/v3/earnings/" + url.PathEscape(ticker)
	q := url.Values{
		"quarter": {strconv.Itoa(quarter)},
		"year":    {strconv.Itoa(year)},
	}
	if err := c.FetchJSON(ctx, path, q, &wire); err != nil {
		return nil, err
	}
	if len(wire) == 0 {
		return nil, fmt.Errorf("%s: no financials for Q%d %d: %w", path, quarter, year, ErrNotFound)
	}
	return wire[0], nil
}
