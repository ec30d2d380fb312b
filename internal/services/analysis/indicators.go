package analysis

import "FinBoard/internal/domain/models"

// IndicatorSpec describes one catalog entry: the dashboard key, display
// name, the provider series it maps to, and its unit.
type IndicatorSpec struct {
	Key    string
	Name   string
	Series string
	Unit   string
}

// IndicatorCatalog is the fixed set of macro series the dashboard tracks.
// Only inflation and unemployment participate in recommendation scoring.
var IndicatorCatalog = []IndicatorSpec{
	{Key: "gdp_growth", Name: "GDP Growth", Series: "realGDPGrowth", Unit: "%"},
	{Key: IndicatorInflation, Name: "Inflation (CPI)", Series: "CPI", Unit: "%"},
	{Key: IndicatorUnemployment, Name: "Unemployment Rate", Series: "unemploymentRate", Unit: "%"},
	{Key: "fed_funds_rate", Name: "Federal Funds Rate", Series: "federalFunds", Unit: "%"},
	{Key: "consumer_sentiment", Name: "Consumer Sentiment", Series: "consumerSentiment", Unit: "index"},
	{Key: "retail_sales", Name: "Retail Sales Growth", Series: "retailSales", Unit: "%"},
}

// ClassifyIndicator maps an observation to a dashboard traffic light.
// Bands for inflation and unemployment align with the recommendation
// engine's economic thresholds.
func ClassifyIndicator(key string, value float64) *models.IndicatorStatus {
	switch key {
	case IndicatorInflation:
		return band(value, inflationLowPercent, inflationHighPercent,
			"Healthy", "Elevated", "High")
	case IndicatorUnemployment:
		return band(value, unemploymentLowPercent, unemploymentHighPercent,
			"Healthy", "Moderate", "Elevated")
	case "gdp_growth":
		return bandInverted(value, 0, 2, "Contracting", "Slow", "Strong")
	case "fed_funds_rate":
		return band(value, 2, 5, "Accommodative", "Neutral", "Restrictive")
	case "consumer_sentiment":
		return bandInverted(value, 70, 90, "Pessimistic", "Neutral", "Optimistic")
	case "retail_sales":
		return bandInverted(value, 0, 0, "Declining", "Flat", "Growing")
	default:
		return nil
	}
}

// band classifies a value where lower is better.
func band(v, low, high float64, goodLabel, midLabel, badLabel string) *models.IndicatorStatus {
	switch {
	case v < low:
		return &models.IndicatorStatus{Level: "good", Color: "green", Label: goodLabel}
	case v <= high:
		return &models.IndicatorStatus{Level: "moderate", Color: "yellow", Label: midLabel}
	default:
		return &models.IndicatorStatus{Level: "bad", Color: "red", Label: badLabel}
	}
}

// bandInverted classifies a value where higher is better.
func bandInverted(v, low, high float64, badLabel, midLabel, goodLabel string) *models.IndicatorStatus {
	switch {
	case v < low:
		return &models.IndicatorStatus{Level: "bad", Color: "red", Label: badLabel}
	case v <= high:
		return &models.IndicatorStatus{Level: "moderate", Color: "yellow", Label: midLabel}
	default:
		return &models.IndicatorStatus{Level: "good", Color: "green", Label: goodLabel}
	}
}
