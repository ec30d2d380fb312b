package usecase

import (
	"context"
	"time"

	"FinBoard/internal/service/provider"
	"FinBoard/pkg/cache"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/util"
)

const financialsKeyPrefix = "financials"

// Financials fetches raw quarterly financial statement fields with one
// fallback to the prior fiscal quarter.
type Financials struct {
	provider *provider.Client
	cache    cache.Service
	ttl      time.Duration
	logger   *xlogger.Logger
	now      func() time.Time
}

// NewFinancials creates the financials fetcher.
func NewFinancials(p *provider.Client, c cache.Service, ttl time.Duration, logger *xlogger.Logger) *Financials {
	return &Financials{provider: p, cache: c, ttl: ttl, logger: logger, now: time.Now}
}

// Quarterly returns the latest obtainable quarterly financials for ticker.
// When neither the current nor the prior fiscal quarter yields data the
// result is a 404.
func (f *Financials) Quarterly(ctx context.Context, ticker string) (map[string]interface{}, bool, error) {
	if !f.provider.APIKeyConfigured() {
		return nil, false, xhttp.ConfigError("market data API key is not configured")
	}

	ticker = util.NormalizeTicker(ticker)
	key := cache.GenerateKey(financialsKeyPrefix, ticker)

	var hit map[string]interface{}
	if err := f.cache.Get(ctx, key, &hit); err == nil {
		return hit, true, nil
	}

	quarter, year := util.FiscalQuarter(f.now())
	data, err := f.provider.QuarterlyFinancials(ctx, ticker, quarter, year)
	if err != nil {
		f.logger.Warn("financials fetch failed, trying prior quarter",
			xlogger.String("ticker", ticker), xlogger.Error(err))
		quarter, year = util.PriorQuarter(quarter, year)
		data, err = f.provider.QuarterlyFinancials(ctx, ticker, quarter, year)
		if err != nil {
			return nil, false, xhttp.NotFoundErrorf("no earnings data available for %s", ticker)
		}
	}

	if err := f.cache.Set(ctx, key, data, f.ttl); err != nil {
		f.logger.Warn("financials cache write failed", xlogger.String("ticker", ticker), xlogger.Error(err))
	}
	return data, false, nil
}
