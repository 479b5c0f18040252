// Command arbd runs the arbitrage-cycle-detection engine as a long-lived
// daemon: it bootstraps a pool snapshot, subscribes to a reserve-update
// feed, and logs profitable cycles as they're found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/defistate/arb-engine/engine"
	"github.com/defistate/arb-engine/ingestion"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	rootLogHandler := slog.NewJSONHandler(os.Stdout, nil)
	rootLogger := slog.New(rootLogHandler)

	close := func() {
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		rootLogger.Error("failed to load configuration", "error", err)
		close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pools, err := loadBootstrapPools(cfg.BootstrapPath)
	if err != nil {
		rootLogger.Error("failed to load bootstrap pools", "error", err)
		close()
	}
	rootLogger.Info("loaded bootstrap snapshot", "pools", len(pools))

	registry := prometheus.NewRegistry()
	go serveMetrics(rootLogger, cfg.MetricsAddr, registry)

	source, err := ingestion.NewJSONRPCSource(ctx, ingestion.Config{
		URL:        cfg.RPCURL,
		Logger:     slogAdapter{rootLogger.With("component", "jsonrpc-source")},
		BufferSize: cfg.BufferSize,
	})
	if err != nil {
		rootLogger.Error("failed to initialize ingestion source", "error", err)
		close()
	}

	driver, err := engine.New(
		ctx,
		pools,
		source,
		slogAdapter{rootLogger.With("component", "driver")},
		registry,
		engine.WithMaxCycleDepth(cfg.MaxCycleDepth),
	)
	if err != nil {
		rootLogger.Error("failed to initialize driver", "error", err)
		close()
	}

	for {
		select {
		case update, ok := <-driver.Updates():
			if !ok {
				return
			}
			if !update.HasAllReserves() {
				continue
			}
			profitable, err := update.ProfitableCycles()
			if err != nil {
				rootLogger.Error("failed to compute profitable cycles", "error", err)
				continue
			}
			for _, c := range profitable {
				quote, err := c.BestQuote()
				if err != nil {
					rootLogger.Error("failed to quote profitable cycle", "error", err)
					continue
				}
				rootLogger.Info("profitable cycle found",
					"amount_in", quote.AmountIn().String(),
					"amount_out", quote.AmountOut().String(),
					"profit", quote.Profit().String(),
					"profit_margin_bps", quote.ProfitMargin(),
				)
			}

		case err := <-driver.Err():
			rootLogger.Error("fatal driver error", "error", err)
			return

		case <-ctx.Done():
			rootLogger.Info("shutting down")
			return
		}
	}
}

func serveMetrics(logger *slog.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

func loadConfig() (*Config, error) {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file.")
	flag.Parse()
	fmt.Fprintf(os.Stderr, "loading configuration from: %s\n", *configPath)
	return LoadConfig(*configPath)
}

// slogAdapter adapts *slog.Logger to the Debug/Info/Warn/Error(msg, args...)
// shape that ingestion.Logger and engine.Logger expect.
type slogAdapter struct {
	logger *slog.Logger
}

func (s slogAdapter) Debug(msg string, args ...any) { s.logger.Debug(msg, args...) }
func (s slogAdapter) Info(msg string, args ...any)  { s.logger.Info(msg, args...) }
func (s slogAdapter) Warn(msg string, args ...any)  { s.logger.Warn(msg, args...) }
func (s slogAdapter) Error(msg string, args ...any) { s.logger.Error(msg, args...) }
