package analysis

import (
	"fmt"

	"FinBoard/internal/domain/models"
)

// Factor and decision constants. These are empirically chosen and preserved
// as-is; do not re-derive them.
const (
	sentimentPositiveScoreMin = 0.5
	sentimentNegativeScoreMax = 0.3

	trendUpPercent   = 5.0
	trendDownPercent = -5.0

	inflationLowPercent       = 3.0
	inflationHighPercent      = 5.0
	unemploymentLowPercent    = 5.0
	unemploymentHighPercent   = 6.0
	economicSubScoreMagnitude = 0.5

	weightSentiment  = 0.4
	weightPriceTrend = 0.3
	weightEconomic   = 0.3

	buyHighConfidenceScore = 0.4
	holdFloorScore         = -0.4
)

// Disclaimer accompanies every recommendation, without exception.
const Disclaimer = "This analysis is for educational purposes only and does not constitute financial advice."

// Indicator keys consulted by the economic factor. Other indicators in the
// set are ignored for scoring even when present.
const (
	IndicatorInflation    = "inflation"
	IndicatorUnemployment = "unemployment"
)

// RecommendationInputs are the three optional signals. Any may be absent;
// an absent signal contributes a zero factor and no reasoning line.
type RecommendationInputs struct {
	Sentiment  *models.SentimentAggregate
	Trend      *models.TrendStatistics
	Indicators models.EconomicIndicatorSet
}

// Recommend blends the three weighted factors into a score in [-1, 1] and
// maps it to a verdict. Pure function: the same inputs always produce the
// same result.
func Recommend(in RecommendationInputs) *models.RecommendationResult {
	var factors models.RecommendationFactors
	var reasoning []string

	if in.Sentiment != nil {
		factors.Sentiment = sentimentFactor(in.Sentiment)
		reasoning = append(reasoning, fmt.Sprintf(
			"Earnings call sentiment is %s (score %.2f) across %d analyzed sentences",
			in.Sentiment.Overall.Sentiment, in.Sentiment.Overall.Score, in.Sentiment.Breakdown.Total))
	}

	if in.Trend != nil {
		factors.PriceTrend = trendFactor(in.Trend)
		reasoning = append(reasoning, fmt.Sprintf(
			"30-day price trend is %s %.2f%%",
			in.Trend.TrendDirection, in.Trend.TrendPercent))
	}

	if econ, ok := economicFactor(in.Indicators); ok {
		factors.Economic = econ
		reasoning = append(reasoning, economicReasoning(in.Indicators))
	}

	score := weightSentiment*float64(factors.Sentiment) +
		weightPriceTrend*float64(factors.PriceTrend) +
		weightEconomic*float64(factors.Economic)

	rec, confidence, risk := decide(score)

	return &models.RecommendationResult{
		Recommendation: rec,
		Confidence:     confidence,
		RiskLevel:      risk,
		Score:          score,
		Summary: fmt.Sprintf("%s with %s confidence (weighted score %.2f)",
			rec, confidence, score),
		Reasoning:  reasoning,
		Factors:    factors,
		Disclaimer: Disclaimer,
	}
}

func sentimentFactor(agg *models.SentimentAggregate) int {
	switch {
	case agg.Overall.Sentiment == models.SentimentPositive && agg.Overall.Score > sentimentPositiveScoreMin:
		return 1
	case agg.Overall.Sentiment == models.SentimentNegative || agg.Overall.Score < sentimentNegativeScoreMax:
		return -1
	default:
		return 0
	}
}

func trendFactor(t *models.TrendStatistics) int {
	switch {
	case t.TrendPercent > trendUpPercent:
		return 1
	case t.TrendPercent < trendDownPercent:
		return -1
	default:
		return 0
	}
}

// economicFactor derives a vote from the inflation and unemployment
// indicators only. The second return is false when neither is available,
// meaning the input was effectively absent.
func economicFactor(set models.EconomicIndicatorSet) (int, bool) {
	inflation, infOK := availableValue(set, IndicatorInflation)
	unemployment, unOK := availableValue(set, IndicatorUnemployment)
	if !infOK && !unOK {
		return 0, false
	}

	var sub float64
	if infOK {
		if inflation < inflationLowPercent {
			sub += economicSubScoreMagnitude
		} else if inflation > inflationHighPercent {
			sub -= economicSubScoreMagnitude
		}
	}
	if unOK {
		if unemployment < unemploymentLowPercent {
			sub += economicSubScoreMagnitude
		} else if unemployment > unemploymentHighPercent {
			sub -= economicSubScoreMagnitude
		}
	}

	switch {
	case sub > 0:
		return 1, true
	case sub < 0:
		return -1, true
	default:
		return 0, true
	}
}

func economicReasoning(set models.EconomicIndicatorSet) string {
	line := "Macro backdrop:"
	if v, ok := availableValue(set, IndicatorInflation); ok {
		line += fmt.Sprintf(" inflation %.1f%%", v)
	}
	if v, ok := availableValue(set, IndicatorUnemployment); ok {
		line += fmt.Sprintf(" unemployment %.1f%%", v)
	}
	return line
}

func availableValue(set models.EconomicIndicatorSet, key string) (float64, bool) {
	ind, ok := set[key]
	if !ok || !ind.Available || ind.Value == nil {
		return 0, false
	}
	return *ind.Value, true
}

// decide maps the weighted score to a verdict. Thresholds are checked in
// order; the mapping is total.
func decide(score float64) (rec, confidence, risk string) {
	switch {
	case score > buyHighConfidenceScore:
		return models.RecommendationBuy, models.ConfidenceHigh, models.RiskModerate
	case score > 0:
		return models.RecommendationBuy, models.ConfidenceModerate, models.RiskModerate
	case score > holdFloorScore:
		return models.RecommendationHold, models.ConfidenceModerate, models.RiskModerate
	default:
		return models.RecommendationSell, models.ConfidenceModerate, models.RiskElevated
	}
}
