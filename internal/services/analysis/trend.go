package analysis

import "FinBoard/internal/domain/models"

// ComputeTrendStatistics summarizes a daily close series, oldest first.
// An empty series yields the zero value.
func ComputeTrendStatistics(points []models.PricePoint) models.TrendStatistics {
	if len(points) == 0 {
		return models.TrendStatistics{}
	}

	high := points[0].Price
	low := points[0].Price
	var sum float64
	for _, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
		sum += p.Price
	}

	first := points[0].Price
	last := points[len(points)-1].Price
	var trendPercent float64
	if first != 0 {
		trendPercent = (last - first) / first * 100
	}

	direction := models.TrendUp
	if trendPercent < 0 {
		direction = models.TrendDown
	}

	return models.TrendStatistics{
		High:           high,
		Low:            low,
		Average:        sum / float64(len(points)),
		TrendPercent:   trendPercent,
		TrendDirection: direction,
	}
}
