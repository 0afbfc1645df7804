package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jvolf/kifu/internal/config"
	"github.com/jvolf/kifu/internal/simulation"
	"github.com/jvolf/kifu/pkg/logger"
	"github.com/jvolf/kifu/pkg/metrics"

	service "github.com/jvolf/kifu/internal/app"
)

// HTTP server timeout constants for the metrics endpoint.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional Prometheus endpoint while the demo league runs.
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		srv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
			}
		}()
	}

	// Drive the full pipeline over a generated demo league and verify
	// the engine's invariants against it.
	report, err := simulation.Run(ctx, simulation.NewConfig(),
		service.WithLogger(log.Named("engine")),
		service.FromConfig(cfg),
	)
	if err != nil {
		log.Error(ctx, "simulation failed", logger.Error(err))
		os.Exit(1)
	}

	for _, check := range report.Checks {
		if check.Passed {
			log.Info(ctx, "check passed", logger.String("check", check.Name), logger.String("detail", check.Detail))
		} else {
			log.Error(ctx, "check failed", logger.String("check", check.Name), logger.String("detail", check.Detail))
		}
	}
	log.Info(ctx, "simulation finished",
		logger.Int("players", len(report.League.Players)),
		logger.Int("checks", len(report.Checks)),
		logger.Duration("elapsed", report.Elapsed),
		logger.Any("passed", report.Passed()))

	if srv != nil {
		// Keep the metrics endpoint up until interrupted.
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
		}
	}

	if !report.Passed() {
		os.Exit(1)
	}
}
