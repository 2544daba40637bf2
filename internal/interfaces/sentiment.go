package interfaces

import (
	"context"

	"algo-trading-alerts/internal/types"
)

// SentimentProvider returns sentiment-annotated news items for a ticker.
type SentimentProvider interface {
	News(ctx context.Context, ticker string) ([]types.NewsItem, error)
}
