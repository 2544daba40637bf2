package interfaces

import (
	"context"

	"algo-trading-alerts/internal/types"
)

// Scorer turns one sentiment-annotated news item plus an optional
// metrics record into a trading signal. Implementations must be pure:
// identical inputs yield identical signals.
type Scorer interface {
	Score(ctx context.Context, item types.NewsItem, metrics *types.StockMetrics) types.TradingSignal
}
