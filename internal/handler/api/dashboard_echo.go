package api

import (
	"net/http"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/usecase"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the dashboard endpoints over Echo. Each route is
// a stateless request/response unit; all state lives in the injected
// usecases and their caches.
type DashboardHandler struct {
	logger     *xlogger.Logger
	analyzer   *usecase.EarningsAnalyzer
	board      *usecase.IndicatorBoard
	trend      *usecase.TrendUsecase
	financials *usecase.Financials
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	analyzer *usecase.EarningsAnalyzer,
	board *usecase.IndicatorBoard,
	trend *usecase.TrendUsecase,
	financials *usecase.Financials,
) *DashboardHandler {
	return &DashboardHandler{
		logger:     logger,
		analyzer:   analyzer,
		board:      board,
		trend:      trend,
		financials: financials,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/indicators", h.Indicators)
	g.GET("/earnings-analysis", h.EarningsAnalysis)
	g.GET("/historical-trend", h.HistoricalTrend)
	g.GET("/earnings", h.Earnings)

	e.GET("/healthz", h.Health)
}

// Indicators serves the macro indicator snapshot.
func (h *DashboardHandler) Indicators(c echo.Context) error {
	board, cached, err := h.board.Snapshot(c.Request().Context())
	if err != nil {
		h.logger.Error("indicator snapshot error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, cached, board)
}

// EarningsAnalysis serves the per-ticker aggregated analysis.
func (h *DashboardHandler) EarningsAnalysis(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, cached, err := h.analyzer.Analyze(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("earnings analysis error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, cached, result)
}

// HistoricalTrend serves the per-ticker 30-day trend.
func (h *DashboardHandler) HistoricalTrend(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	trend, cached, err := h.trend.Trend(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("historical trend error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, cached, trend)
}

// Earnings serves raw quarterly financials.
func (h *DashboardHandler) Earnings(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	data, cached, err := h.financials.Quarterly(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("earnings fetch error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, cached, data)
}

// Health reports process liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
