package decisionobs

import (
	"context"
	"time"

	"algo-trading-alerts/internal/interfaces"
	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/trace"
	"algo-trading-alerts/internal/types"
)

type observableScorer struct {
	scorer interfaces.Scorer
}

var _ interfaces.Scorer = (*observableScorer)(nil)

// Wrap adds logging and tracing around a scorer.
func Wrap(scorer interfaces.Scorer) interfaces.Scorer {
	return &observableScorer{
		scorer: scorer,
	}
}

func (obs *observableScorer) Score(ctx context.Context, item types.NewsItem, metrics *types.StockMetrics) types.TradingSignal {
	ctx, span := trace.StartSpan(ctx, "decision.Score")
	defer span.End()

	start := time.Now()

	signal := obs.scorer.Score(ctx, item, metrics)

	// Use InfoSkip(1) to report the actual caller, not this wrapper
	logger.InfoSkip(ctx, 1, "Signal scored",
		"ticker", item.Ticker,
		"decision", signal.Decision,
		"score", signal.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return signal
}
