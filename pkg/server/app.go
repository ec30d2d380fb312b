package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"FinBoard/pkg/config"
	xhttp "FinBoard/pkg/http"
	"FinBoard/pkg/http/middleware"
	xlogger "FinBoard/pkg/logger"
)

// App encapsulates the application lifecycle: one Echo server plus the
// process-lifetime caches, constructed once and passed in explicitly.
type App struct {
	cfg        *config.Config
	logger     *xlogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
	closers    []io.Closer
}

// New creates a new App instance. closers are shut down in order on exit.
func New(cfg *config.Config, logger *xlogger.Logger, handler xhttp.Handler, closers ...io.Closer) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		closers: closers,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithStaticDir(a.cfg.Web.StaticDir),
	}
	if a.cfg.Metrics.Enabled && a.cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	} else if !a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	if a.cfg.RateLimit.Enabled {
		opts = append(opts, xhttp.WithRateLimit(middleware.RateLimitConfig{
			Capacity:     a.cfg.RateLimit.Capacity,
			RefillPerSec: a.cfg.RateLimit.RefillPerSec,
		}))
	}

	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		xlogger.Int("port", a.cfg.Server.Port),
		xlogger.String("environment", a.cfg.Environment))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the HTTP server and closes caches.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", xlogger.Error(err))
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close error", xlogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
