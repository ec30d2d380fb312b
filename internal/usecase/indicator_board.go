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

const (
	indicatorBoardKey   = "indicators:board"
	indicatorDataSource = "marketdata"
)

// IndicatorBoard assembles the macro indicator snapshot. Every catalog
// entry is always represented; a failed fetch is marked unavailable with a
// null value rather than omitted.
type IndicatorBoard struct {
	provider *provider.Client
	cache    cache.Service
	ttl      time.Duration
	logger   *xlogger.Logger
	metrics  *metrics.Recorder
}

// NewIndicatorBoard creates the indicator aggregator.
func NewIndicatorBoard(p *provider.Client, c cache.Service, ttl time.Duration, logger *xlogger.Logger, rec *metrics.Recorder) *IndicatorBoard {
	return &IndicatorBoard{provider: p, cache: c, ttl: ttl, logger: logger, metrics: rec}
}

// Snapshot returns the indicator set, cached for the configured TTL.
func (b *IndicatorBoard) Snapshot(ctx context.Context) (*models.IndicatorBoard, bool, error) {
	if !b.provider.APIKeyConfigured() {
		return nil, false, xhttp.ConfigError("market data API key is not configured")
	}

	var hit models.IndicatorBoard
	if err := b.cache.Get(ctx, indicatorBoardKey, &hit); err == nil {
		b.recordCache(true)
		return &hit, true, nil
	}
	b.recordCache(false)

	type fetched struct {
		spec analysis.IndicatorSpec
		obs  *provider.IndicatorObservation
		err  error
	}

	results := make([]fetched, len(analysis.IndicatorCatalog))
	var wg sync.WaitGroup
	for i, spec := range analysis.IndicatorCatalog {
		wg.Add(1)
		go func(i int, spec analysis.IndicatorSpec) {
			defer wg.Done()
			obs, err := b.provider.Indicator(ctx, spec.Series)
			results[i] = fetched{spec: spec, obs: obs, err: err}
		}(i, spec)
	}
	wg.Wait()

	set := models.EconomicIndicatorSet{}
	available := 0
	for _, r := range results {
		if r.err != nil {
			b.logger.Warn("indicator unavailable",
				xlogger.String("indicator", r.spec.Key),
				xlogger.Error(r.err))
			set[r.spec.Key] = models.EconomicIndicator{
				Name:      r.spec.Name,
				Value:     nil,
				Unit:      r.spec.Unit,
				Available: false,
			}
			continue
		}
		v := r.obs.Value
		set[r.spec.Key] = models.EconomicIndicator{
			Name:      r.spec.Name,
			Value:     &v,
			Unit:      r.spec.Unit,
			Period:    r.obs.Period,
			Status:    analysis.ClassifyIndicator(r.spec.Key, v),
			Available: true,
		}
		available++
	}

	if available == 0 {
		sources := map[string]interface{}{}
		for _, r := range results {
			sources[r.spec.Key] = errString(r.err)
		}
		return nil, false, xhttp.AllSourcesFailedError(sources)
	}

	board := &models.IndicatorBoard{
		Indicators:      set,
		LastUpdated:     util.Timestamp(),
		Source:          indicatorDataSource,
		AvailableCount:  available,
		TotalIndicators: len(analysis.IndicatorCatalog),
	}

	if err := b.cache.Set(ctx, indicatorBoardKey, board, b.ttl); err != nil {
		b.logger.Warn("indicator cache write failed", xlogger.Error(err))
	}
	return board, false, nil
}

func (b *IndicatorBoard) recordCache(hit bool) {
	if b.metrics == nil {
		return
	}
	if hit {
		b.metrics.RecordCacheHit("indicators")
	} else {
		b.metrics.RecordCacheMiss("indicators")
	}
}
