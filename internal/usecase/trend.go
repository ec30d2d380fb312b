package usecase

import (
	"context"
	"net/http"
	"time"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/service/provider"
	"FinBoard/internal/services/analysis"
	"FinBoard/pkg/cache"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/metrics"
	"FinBoard/pkg/util"
)

const trendKeyPrefix = "trend"

// TrendUsecase computes 30-day price trend statistics from the public
// charting API. Its cache is the capacity-bounded variant: past the entry
// cap the oldest-inserted entry is evicted.
type TrendUsecase struct {
	chart   *provider.ChartClient
	keyed   *provider.Client
	cache   cache.Service
	ttl     time.Duration
	logger  *xlogger.Logger
	metrics *metrics.Recorder
}

// NewTrendUsecase creates the trend computer.
func NewTrendUsecase(chart *provider.ChartClient, keyed *provider.Client, c cache.Service, ttl time.Duration, logger *xlogger.Logger, rec *metrics.Recorder) *TrendUsecase {
	return &TrendUsecase{chart: chart, keyed: keyed, cache: c, ttl: ttl, logger: logger, metrics: rec}
}

// Trend returns the historical trend payload for ticker.
func (u *TrendUsecase) Trend(ctx context.Context, ticker string) (*models.HistoricalTrend, bool, error) {
	if !u.keyed.APIKeyConfigured() {
		return nil, false, xhttp.ConfigError("market data API key is not configured")
	}

	ticker = util.NormalizeTicker(ticker)
	key := cache.GenerateKey(trendKeyPrefix, ticker)

	var hit models.HistoricalTrend
	if err := u.cache.Get(ctx, key, &hit); err == nil {
		u.recordCache(true)
		return &hit, true, nil
	}
	u.recordCache(false)

	points, err := u.chart.DailyCloses(ctx, ticker)
	if err != nil {
		u.logger.Warn("chart fetch failed", xlogger.String("ticker", ticker), xlogger.Error(err))
		return nil, false, xhttp.NewAppError("ERR_UPSTREAM", "",
			"historical price data is unavailable", http.StatusInternalServerError).WithError(err)
	}

	trend := &models.HistoricalTrend{
		Ticker:     ticker,
		DataPoints: points,
		Statistics: analysis.ComputeTrendStatistics(points),
	}

	if err := u.cache.Set(ctx, key, trend, u.ttl); err != nil {
		u.logger.Warn("trend cache write failed", xlogger.String("ticker", ticker), xlogger.Error(err))
	}
	return trend, false, nil
}

func (u *TrendUsecase) recordCache(hit bool) {
	if u.metrics == nil {
		return
	}
	if hit {
		u.metrics.RecordCacheHit(trendKeyPrefix)
	} else {
		u.metrics.RecordCacheMiss(trendKeyPrefix)
	}
}
