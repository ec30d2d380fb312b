package models

// PricePoint is one daily close.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

const (
	TrendUp   = "up"
	TrendDown = "down"
)

// TrendStatistics summarizes a 30-day price series.
// Invariant for a non-empty series: Low <= Average <= High, and
// TrendDirection is "up" iff TrendPercent >= 0.
type TrendStatistics struct {
	High           float64 `json:"high"`
	Low            float64 `json:"low"`
	Average        float64 `json:"average"`
	TrendPercent   float64 `json:"trendPercent"`
	TrendDirection string  `json:"trendDirection"`
}

// HistoricalTrend is the per-ticker trend payload.
type HistoricalTrend struct {
	Ticker     string          `json:"ticker"`
	DataPoints []PricePoint    `json:"dataPoints"`
	Statistics TrendStatistics `json:"statistics"`
}
