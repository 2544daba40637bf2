package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algo-trading-alerts/internal/interfaces"
	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/metrics"
	"algo-trading-alerts/internal/siglog"
	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/summary"
	"algo-trading-alerts/internal/trace"
	"algo-trading-alerts/internal/types"
)

type pipeline struct {
	cfg      *store.Config
	market   interfaces.MarketData
	news     interfaces.SentimentProvider
	scorer   interfaces.Scorer
	calc     *metrics.Calculator
	notifier interfaces.Notifier
}

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}
	prepareSignalLog(ctx, cfg)

	p := &pipeline{
		cfg:      cfg,
		market:   initializeMarketData(ctx, cfg),
		news:     initializeNews(ctx, cfg),
		scorer:   initializeScorer(cfg),
		calc:     initializeCalculator(cfg),
		notifier: initializeNotifier(cfg),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	logger.Info(ctx, "Signal engine started",
		"tickers", cfg.Tickers,
		"data_source", cfg.DataSource,
		"poll_minutes", cfg.PollMinutes,
	)

	p.runCycle(ctx)

	if cfg.PollMinutes > 0 {
		tick := time.NewTicker(time.Duration(cfg.PollMinutes) * time.Minute)
		defer tick.Stop()

	loop:
		for {
			select {
			case <-tick.C:
				p.runCycle(ctx)
			case <-sigc:
				logger.Info(ctx, "Shutting down...")
				break loop
			case <-ctx.Done():
				break loop
			}
		}
	}

	if path, err := summary.SummarizeToday(); err != nil {
		logger.ErrorWithErr(ctx, "Failed to write daily summary", err)
	} else if path != "" {
		logger.Info(ctx, "Daily summary written", "path", path)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = trace.Shutdown(shutdownCtx)
}

func (p *pipeline) runCycle(ctx context.Context) {
	for _, ticker := range p.cfg.Tickers {
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.processTicker(ctx, ticker)
	}
}

// processTicker runs one ticker through the full pipeline: fetch news and
// market data, compute indicators, score each headline, then alert and
// persist the resulting signals.
func (p *pipeline) processTicker(ctx context.Context, ticker string) {
	ctx, span := trace.StartSpan(ctx, "pipeline.processTicker")
	defer span.End()

	items := p.fetchNews(ctx, ticker)
	stockMetrics := p.computeMetrics(ctx, ticker)

	for _, item := range items {
		sig := p.scorer.Score(ctx, item, stockMetrics)

		logger.Signal(ctx, ticker, string(sig.Decision), sig.Score, sig.Reasoning,
			"headline", item.Title,
		)

		p.notifier.NotifySignal(ctx, sig)
		p.notifier.NotifyNews(ctx, item)

		if err := siglog.Append(sig); err != nil {
			logger.Warn(ctx, "Failed to persist signal", "ticker", ticker, "error", err)
		}
	}
}

// fetchNews returns the ticker's annotated headlines. With news disabled
// or unavailable it falls back to a single neutral placeholder so the
// fundamental and technical components still produce a signal.
func (p *pipeline) fetchNews(ctx context.Context, ticker string) []types.NewsItem {
	if p.news != nil {
		items, err := p.news.News(ctx, ticker)
		if err != nil {
			logger.Warn(ctx, "News fetch failed - falling back to neutral sentiment",
				"ticker", ticker, "error", err)
		} else if len(items) > 0 {
			return items
		}
	}

	return []types.NewsItem{{
		Ticker:         ticker,
		Title:          "No recent news",
		Source:         "none",
		Timestamp:      time.Now().UTC(),
		SentimentLabel: types.SentimentNeutral,
	}}
}

// computeMetrics fetches history and fundamentals and runs the indicator
// calculator. Returns nil when price history is unavailable; the scorer
// degrades to sentiment-only in that case.
func (p *pipeline) computeMetrics(ctx context.Context, ticker string) *types.StockMetrics {
	candles, err := p.market.History(ctx, ticker, p.cfg.Indicators.LookbackDays)
	if err != nil {
		return nil
	}

	fundamentals, err := p.market.Fundamentals(ctx, ticker)
	if err != nil {
		logger.Warn(ctx, "Fundamentals fetch failed - scoring technicals only",
			"ticker", ticker, "error", err)
		fundamentals = types.Fundamentals{}
	}

	return p.calc.Compute(ctx, ticker, candles, fundamentals)
}
