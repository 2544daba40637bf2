package interfaces

import (
	"context"

	"algo-trading-alerts/internal/types"
)

// Notifier dispatches user-facing alerts for strong signals and
// high-confidence news.
type Notifier interface {
	NotifySignal(ctx context.Context, signal types.TradingSignal)
	NotifyNews(ctx context.Context, item types.NewsItem)
}
