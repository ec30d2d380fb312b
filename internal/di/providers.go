package di

import (
	"fmt"
	"io"

	"FinBoard/internal/handler/api"
	"FinBoard/internal/service/provider"
	"FinBoard/internal/services/analysis"
	"FinBoard/internal/usecase"
	"FinBoard/pkg/cache"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/metrics"
	"FinBoard/pkg/server"
)

// Caches bundles the process-lifetime stores: one general store for
// indicator, analysis, and financials payloads, and a capacity-bounded
// store for trend payloads.
type Caches struct {
	Main  cache.Service
	Trend cache.Service
}

// Close shuts down both stores.
func (c *Caches) Close() error {
	err := c.Main.Close()
	if terr := c.Trend.Close(); err == nil {
		err = terr
	}
	return err
}

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	lc := &xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return xlogger.New(lc)
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCaches creates the cache stores. With Redis enabled the general
// store lives in Redis; the trend store stays in memory because its FIFO
// capacity bound is a memory-store feature.
func ProvideCaches(cfg *config.Config) (*Caches, error) {
	trend := cache.NewMemoryCache(
		cache.WithMemoryMaxSize(cfg.Cache.TrendMaxEntries),
		cache.WithMemoryCleanup(0),
	)

	if cfg.Cache.Redis.Enabled {
		main, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return &Caches{Main: main, Trend: trend}, nil
	}

	return &Caches{Main: cache.NewMemoryCache(), Trend: trend}, nil
}

// ProvideProviderClient creates the keyed market data client.
func ProvideProviderClient(cfg *config.Config, rec *metrics.Recorder) *provider.Client {
	return provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout,
		provider.WithMetrics(rec))
}

// ProvideChartClient creates the keyless charting API client.
func ProvideChartClient(cfg *config.Config) *provider.ChartClient {
	return provider.NewChartClient(cfg.Chart.BaseURL, cfg.Chart.Timeout)
}

// ProvideSampler creates the paced sentence sentiment sampler.
func ProvideSampler(cfg *config.Config, client *provider.Client, logger *xlogger.Logger) *analysis.SentimentSampler {
	return analysis.NewSentimentSampler(client, analysis.SamplerConfig{
		MaxSentences:   cfg.Provider.Sentiment.MaxSentences,
		MinSentenceLen: cfg.Provider.Sentiment.MinSentenceLen,
		MaxSentenceLen: cfg.Provider.Sentiment.MaxSentenceLen,
		PacingInterval: cfg.Provider.Sentiment.PacingInterval,
	}, logger)
}

// ProvideIndicatorBoard creates the indicator aggregator.
func ProvideIndicatorBoard(cfg *config.Config, client *provider.Client, caches *Caches, logger *xlogger.Logger, rec *metrics.Recorder) *usecase.IndicatorBoard {
	return usecase.NewIndicatorBoard(client, caches.Main, cfg.Cache.TTL.Indicators, logger, rec)
}

// ProvideTrendUsecase creates the trend computer.
func ProvideTrendUsecase(cfg *config.Config, chart *provider.ChartClient, client *provider.Client, caches *Caches, logger *xlogger.Logger, rec *metrics.Recorder) *usecase.TrendUsecase {
	return usecase.NewTrendUsecase(chart, client, caches.Trend, cfg.Cache.TTL.Trend, logger, rec)
}

// ProvideEarningsAnalyzer creates the aggregation pipeline.
func ProvideEarningsAnalyzer(
	cfg *config.Config,
	client *provider.Client,
	sampler *analysis.SentimentSampler,
	trend *usecase.TrendUsecase,
	board *usecase.IndicatorBoard,
	caches *Caches,
	logger *xlogger.Logger,
	rec *metrics.Recorder,
) *usecase.EarningsAnalyzer {
	return usecase.NewEarningsAnalyzer(client, sampler, trend, board, caches.Main, cfg.Cache.TTL.Earnings, logger, rec)
}

// ProvideFinancials creates the raw financials fetcher.
func ProvideFinancials(cfg *config.Config, client *provider.Client, caches *Caches, logger *xlogger.Logger) *usecase.Financials {
	return usecase.NewFinancials(client, caches.Main, cfg.Cache.TTL.Earnings, logger)
}

// ProvideHandler creates the Echo route handler.
func ProvideHandler(
	logger *xlogger.Logger,
	analyzer *usecase.EarningsAnalyzer,
	board *usecase.IndicatorBoard,
	trend *usecase.TrendUsecase,
	financials *usecase.Financials,
) *api.DashboardHandler {
	return api.NewDashboardHandler(logger, analyzer, board, trend, financials)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *xlogger.Logger, handler *api.DashboardHandler, caches *Caches) *server.App {
	return server.New(cfg, logger, handler, io.Closer(caches))
}
