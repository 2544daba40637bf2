package marketobs

import (
	"context"
	"time"

	"algo-trading-alerts/internal/interfaces"
	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/trace"
	"algo-trading-alerts/internal/types"
)

type observableMarketData struct {
	provider interfaces.MarketData
}

var _ interfaces.MarketData = (*observableMarketData)(nil)

// Wrap adds logging and tracing around a market data provider.
func Wrap(provider interfaces.MarketData) interfaces.MarketData {
	return &observableMarketData{
		provider: provider,
	}
}

func (om *observableMarketData) History(ctx context.Context, ticker string, days int) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.History")
	defer span.End()

	start := time.Now()

	candles, err := om.provider.History(ctx, ticker, days)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch price history", err,
			"ticker", ticker,
			"days", days,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Price history fetched",
		"ticker", ticker,
		"candles", len(candles),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return candles, nil
}

func (om *observableMarketData) Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Fundamentals")
	defer span.End()

	fundamentals, err := om.provider.Fundamentals(ctx, ticker)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch fundamentals", err,
			"ticker", ticker,
		)
		return types.Fundamentals{}, err
	}

	return fundamentals, nil
}
