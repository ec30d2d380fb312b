package models

const (
	RecommendationBuy  = "BUY"
	RecommendationHold = "HOLD"
	RecommendationSell = "SELL"

	ConfidenceHigh     = "High"
	ConfidenceModerate = "Moderate"

	RiskModerate = "Moderate"
	RiskElevated = "Elevated"
)

// RecommendationFactors are the three discrete factor votes, each in
// {-1, 0, 1}.
type RecommendationFactors struct {
	Sentiment  int `json:"sentiment"`
	PriceTrend int `json:"priceTrend"`
	Economic   int `json:"economic"`
}

// RecommendationResult is a pure function of its factor inputs; it carries
// no hidden state and is recomputed on every aggregation run.
type RecommendationResult struct {
	Recommendation string                `json:"recommendation"`
	Confidence     string                `json:"confidence"`
	RiskLevel      string                `json:"riskLevel"`
	Score          float64               `json:"score"`
	Summary        string                `json:"summary"`
	Reasoning      []string              `json:"reasoning"`
	Factors        RecommendationFactors `json:"factors"`
	Disclaimer     string                `json:"disclaimer"`
}
