package interfaces

import (
	"context"

	"algo-trading-alerts/internal/types"
)

// MarketData supplies the price history and fundamentals the indicator
// calculator consumes. Candles are ascending by time.
type MarketData interface {
	History(ctx context.Context, ticker string, days int) ([]types.Candle, error)
	Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error)
}
