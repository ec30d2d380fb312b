//go:build wireinject
// +build wireinject

package di

import (
	"FinBoard/pkg/config"
	"FinBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCaches,

		// Upstream clients
		ProvideProviderClient,
		ProvideChartClient,

		// Analysis pipeline
		ProvideSampler,
		ProvideIndicatorBoard,
		ProvideTrendUsecase,
		ProvideEarningsAnalyzer,
		ProvideFinancials,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
