package models

// SpeakerTurn is one attributed statement inside an earnings call.
type SpeakerTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TranscriptRecord is a raw earnings-call transcript as fetched from the
// provider. Speakers may arrive either structured or as a JSON-serialized
// string inside RawSpeakers; decoding of the latter is best effort.
type TranscriptRecord struct {
	Ticker      string        `json:"ticker"`
	Quarter     int           `json:"quarter"`
	Year        int           `json:"year"`
	Date        string        `json:"date"`
	Content     string        `json:"content"`
	Turns       []SpeakerTurn `json:"speakers,omitempty"`
	RawSpeakers string        `json:"raw_speakers,omitempty"`
}

// SentimentLabel classifies a sentence or an aggregate.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// SentimentScore is one scored unit of text from the scoring endpoint.
type SentimentScore struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// SentimentSample is one analyzed sentence.
type SentimentSample struct {
	Sentence  string         `json:"sentence"`
	Sentiment SentimentLabel `json:"sentiment"`
	Score     float64        `json:"score"`
}

// SentimentOverall is the blended verdict over all samples.
type SentimentOverall struct {
	Sentiment SentimentLabel `json:"sentiment"`
	Score     float64        `json:"score"`
}

// SentimentBreakdown counts samples per label.
// Invariant: Total == Positive + Negative + Neutral.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

// SentimentHighlights carries the extreme samples, nil when the category
// is empty.
type SentimentHighlights struct {
	MostPositive *SentimentSample `json:"mostPositive"`
	MostNegative *SentimentSample `json:"mostNegative"`
}

// SentimentRatio holds independently rounded per-label percentages. They may
// not sum to exactly 100.
type SentimentRatio struct {
	PositivePercent int `json:"positivePercent"`
	NegativePercent int `json:"negativePercent"`
	NeutralPercent  int `json:"neutralPercent"`
}

// SentimentAggregate is the full sentiment verdict for one transcript.
type SentimentAggregate struct {
	Overall        SentimentOverall    `json:"overall"`
	Breakdown      SentimentBreakdown  `json:"breakdown"`
	Highlights     SentimentHighlights `json:"highlights"`
	SentimentRatio SentimentRatio      `json:"sentimentRatio"`
}

// StockQuote is a real-time price snapshot.
type StockQuote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"marketCap,omitempty"`
}

// EarningsAnalysis is the assembled per-ticker dashboard payload.
type EarningsAnalysis struct {
	Ticker            string                 `json:"ticker"`
	Timestamp         string                 `json:"timestamp"`
	StockData         *StockQuote            `json:"stockData"`
	EarningsData      map[string]interface{} `json:"earningsData"`
	SentimentAnalysis *SentimentAggregate    `json:"sentimentAnalysis"`
	HistoricalTrend   *HistoricalTrend       `json:"historicalTrend"`
	Recommendation    *RecommendationResult  `json:"recommendation"`
}
