package main

import (
	"context"
	"fmt"
	"os"

	"algo-trading-alerts/internal/decision"
	"algo-trading-alerts/internal/decision/decisionobs"
	"algo-trading-alerts/internal/interfaces"
	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/marketdata"
	"algo-trading-alerts/internal/marketdata/marketobs"
	"algo-trading-alerts/internal/metrics"
	"algo-trading-alerts/internal/news"
	"algo-trading-alerts/internal/notify"
	"algo-trading-alerts/internal/siglog"
	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes the logger and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// prepareSignalLog applies the configured retention and append policy to
// the signal log directory before the first cycle runs.
func prepareSignalLog(ctx context.Context, cfg *store.Config) {
	if n := cfg.Storage.RetentionDays; n > 0 {
		if err := siglog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old signal logs", "error", err)
		}
	}
	if !cfg.Storage.Append {
		if err := siglog.Truncate(); err != nil {
			logger.Warn(ctx, "Failed to truncate signal log", "error", err)
		}
	}
}

// initializeMarketData returns the configured market data provider with
// observability middleware.
func initializeMarketData(ctx context.Context, cfg *store.Config) interfaces.MarketData {
	provider := marketdata.New(cfg)

	if cfg.DataSource == "LIVE" {
		logger.Info(ctx, "Using LIVE market data from Yahoo Finance")
	} else {
		logger.Info(ctx, "Using STATIC mock market data for testing")
	}

	return marketobs.Wrap(provider)
}

// initializeNews returns the news service, or nil when news is disabled.
func initializeNews(ctx context.Context, cfg *store.Config) interfaces.SentimentProvider {
	if !cfg.News.Enabled {
		logger.Info(ctx, "News scraping disabled - signals will use neutral sentiment")
		return nil
	}
	return news.NewService(cfg, news.ServiceConfigFrom(cfg))
}

// initializeScorer returns the decision engine with observability
// middleware.
func initializeScorer(cfg *store.Config) interfaces.Scorer {
	return decisionobs.Wrap(decision.New(cfg))
}

func initializeCalculator(cfg *store.Config) *metrics.Calculator {
	return metrics.NewCalculator(metrics.ParamsFromConfig(cfg))
}

func initializeNotifier(cfg *store.Config) interfaces.Notifier {
	return notify.NewManager(cfg.Notifications.Enabled, cfg.Notifications.MaxStored, cfg.Thresholds.HighConfidence)
}
