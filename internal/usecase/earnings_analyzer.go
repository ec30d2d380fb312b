package usecase

import (
	"context"
	"sync"
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

const analysisKeyPrefix = "analysis"

// EarningsAnalyzer runs the full per-ticker aggregation: join-all fan-out
// over the four upstream signals, sentiment sampling over the extracted
// transcript text, recommendation blending, and a cache write.
type EarningsAnalyzer struct {
	provider *provider.Client
	sampler  *analysis.SentimentSampler
	trend    *TrendUsecase
	board    *IndicatorBoard
	cache    cache.Service
	ttl      time.Duration
	logger   *xlogger.Logger
	metrics  *metrics.Recorder
}

// NewEarningsAnalyzer creates the analyzer.
func NewEarningsAnalyzer(
	p *provider.Client,
	sampler *analysis.SentimentSampler,
	trend *TrendUsecase,
	board *IndicatorBoard,
	c cache.Service,
	ttl time.Duration,
	logger *xlogger.Logger,
	rec *metrics.Recorder,
) *EarningsAnalyzer {
	return &EarningsAnalyzer{
		provider: p,
		sampler:  sampler,
		trend:    trend,
		board:    board,
		cache:    c,
		ttl:      ttl,
		logger:   logger,
		metrics:  rec,
	}
}

// Analyze aggregates all signals for ticker. The second return reports
// whether the payload was served from cache.
func (a *EarningsAnalyzer) Analyze(ctx context.Context, ticker string) (*models.EarningsAnalysis, bool, error) {
	if !a.provider.APIKeyConfigured() {
		return nil, false, xhttp.ConfigError("market data API key is not configured")
	}

	ticker = util.NormalizeTicker(ticker)
	key := cache.GenerateKey(analysisKeyPrefix, ticker)

	var hit models.EarningsAnalysis
	if err := a.cache.Get(ctx, key, &hit); err == nil {
		a.recordCache(analysisKeyPrefix, true)
		return &hit, true, nil
	}
	a.recordCache(analysisKeyPrefix, false)

	start := time.Now()

	// Join-all fan-out: every branch recovers its own failure to "absent"
	// so the aggregation always completes. One failing source never cancels
	// or blocks the siblings.
	var (
		wg         sync.WaitGroup
		transcript *models.TranscriptRecord
		quote      *models.StockQuote
		trendData  *models.HistoricalTrend
		indicators models.EconomicIndicatorSet

		transcriptErr, quoteErr, trendErr, indicatorsErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		transcript, transcriptErr = a.provider.Transcript(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		quote, quoteErr = a.provider.Quote(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		trendData, trendErr = a.fetchTrend(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		indicators, indicatorsErr = a.fetchIndicators(ctx)
	}()
	wg.Wait()

	a.logBranch("transcript", ticker, transcriptErr)
	a.logBranch("quote", ticker, quoteErr)
	a.logBranch("trend", ticker, trendErr)
	a.logBranch("indicators", ticker, indicatorsErr)

	if transcript == nil && quote == nil && trendData == nil && indicators == nil {
		return nil, false, xhttp.AllSourcesFailedError(map[string]interface{}{
			"transcript": errString(transcriptErr),
			"stockData":  errString(quoteErr),
			"trend":      errString(trendErr),
			"indicators": errString(indicatorsErr),
		})
	}

	// Sentiment is skipped, not attempted with empty input, when extraction
	// yields no text.
	var sentiment *models.SentimentAggregate
	if transcript != nil {
		if text := analysis.ExtractExecutiveRemarks(transcript); text != "" {
			agg, err := a.sampler.Analyze(ctx, text)
			if err != nil {
				a.logger.Warn("sentiment sampling aborted", xlogger.String("ticker", ticker), xlogger.Error(err))
			} else {
				sentiment = agg
			}
		}
	}

	var trendStats *models.TrendStatistics
	if trendData != nil {
		trendStats = &trendData.Statistics
	}

	result := &models.EarningsAnalysis{
		Ticker:            ticker,
		Timestamp:         util.Timestamp(),
		StockData:         quote,
		SentimentAnalysis: sentiment,
		HistoricalTrend:   trendData,
		Recommendation: analysis.Recommend(analysis.RecommendationInputs{
			Sentiment:  sentiment,
			Trend:      trendStats,
			Indicators: indicators,
		}),
	}

	if transcript != nil {
		result.EarningsData = map[string]interface{}{
			"quarter": transcript.Quarter,
			"year":    transcript.Year,
			"date":    transcript.Date,
		}
	}

	if err := a.cache.Set(ctx, key, result, a.ttl); err != nil {
		a.logger.Warn("analysis cache write failed", xlogger.String("ticker", ticker), xlogger.Error(err))
	}

	if a.metrics != nil {
		a.metrics.RecordPipelineLatency("earnings_analysis", time.Since(start).Seconds())
	}
	return result, false, nil
}

// fetchTrend tries the provider's price series first and falls back to the
// service's own trend computation (the same path behind the historical-trend
// endpoint) as a secondary source.
func (a *EarningsAnalyzer) fetchTrend(ctx context.Context, ticker string) (*models.HistoricalTrend, error) {
	points, err := a.provider.DailySeries(ctx, ticker, 30)
	if err == nil {
		return &models.HistoricalTrend{
			Ticker:     ticker,
			DataPoints: points,
			Statistics: analysis.ComputeTrendStatistics(points),
		}, nil
	}

	trend, _, ferr := a.trend.Trend(ctx, ticker)
	if ferr != nil {
		return nil, err
	}
	return trend, nil
}

// fetchIndicators fetches the two scored macro series directly, falling back
// to the indicator board snapshot when the direct fetch yields nothing.
func (a *EarningsAnalyzer) fetchIndicators(ctx context.Context) (models.EconomicIndicatorSet, error) {
	set := models.EconomicIndicatorSet{}
	var lastErr error
	for _, spec := range analysis.IndicatorCatalog {
		if spec.Key != analysis.IndicatorInflation && spec.Key != analysis.IndicatorUnemployment {
			continue
		}
		obs, err := a.provider.Indicator(ctx, spec.Series)
		if err != nil {
			lastErr = err
			continue
		}
		v := obs.Value
		set[spec.Key] = models.EconomicIndicator{
			Name:      spec.Name,
			Value:     &v,
			Unit:      spec.Unit,
			Period:    obs.Period,
			Status:    analysis.ClassifyIndicator(spec.Key, v),
			Available: true,
		}
	}
	if len(set) > 0 {
		return set, nil
	}

	board, _, err := a.board.Snapshot(ctx)
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return board.Indicators, nil
}

func (a *EarningsAnalyzer) logBranch(name, ticker string, err error) {
	if err != nil {
		a.logger.Warn("upstream source unavailable",
			xlogger.String("source", name),
			xlogger.String("ticker", ticker),
			xlogger.Error(err))
	}
}

func (a *EarningsAnalyzer) recordCache(prefix string, hit bool) {
	if a.metrics == nil {
		return
	}
	if hit {
		a.metrics.RecordCacheHit(prefix)
	} else {
		a.metrics.RecordCacheMiss(prefix)
	}
}

func errString(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
