package decision

import (
	"context"
	"fmt"
	"strings"

	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/types"
)

// Score boost applied to the sentiment component when the classifier
// confidence exceeds the configured high-confidence threshold.
const highConfidenceBoost = 1.2

// Engine combines sentiment, fundamental and technical signals into a
// weighted trading decision. It is stateless; calls are safe to run
// concurrently across tickers.
type Engine struct {
	cfg *store.Config
}

func New(cfg *store.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score produces a TradingSignal for one sentiment-annotated news item.
// Metrics may be nil, in which case the fundamental and technical
// components are both 0 and the decision rides on sentiment alone.
// Missing individual fields only exclude their factor; Score never fails.
func (e *Engine) Score(ctx context.Context, item types.NewsItem, m *types.StockMetrics) types.TradingSignal {
	sentiment := e.sentimentScore(item)
	fundamental := averageFactors(fundamentalFactors(m))
	technical := averageFactors(technicalFactors(m))

	combined := sentiment*e.cfg.Weights.Sentiment +
		fundamental*e.cfg.Weights.Fundamental +
		technical*e.cfg.Weights.Technical

	tag := e.classify(combined)
	reasoning := buildReasoning(item, m, combined)

	logger.Debug(ctx, "Signal scored",
		"ticker", item.Ticker,
		"sentiment", sentiment,
		"fundamental", fundamental,
		"technical", technical,
		"combined", combined,
		"decision", string(tag),
	)

	return types.TradingSignal{
		News:      item,
		Metrics:   m,
		Decision:  tag,
		Score:     combined,
		Reasoning: reasoning,
	}
}

func (e *Engine) sentimentScore(item types.NewsItem) float64 {
	if item.SentimentScore == nil {
		return 0.0
	}
	s := *item.SentimentScore
	if item.SentimentConfidence != nil && *item.SentimentConfidence > e.cfg.Thresholds.HighConfidence {
		s *= highConfidenceBoost
	}
	return clamp(s)
}

func fundamentalFactors(m *types.StockMetrics) []factor {
	if m == nil {
		return nil
	}
	return []factor{
		pegFactor(m.PEGRatio),
		roeFactor(m.ROE),
		epsFactor(m.EPS),
		valueRatioFactor(m.IntrinsicValue, m.CurrentPrice),
	}
}

func technicalFactors(m *types.StockMetrics) []factor {
	if m == nil {
		return nil
	}
	return []factor{
		rsiFactor(m.RSI),
		macdFactor(m.MACDHistogram),
		bollingerFactor(m),
		drawdownFactor(m.MaxDrawdown),
	}
}

// classify maps the combined score onto a decision tag with an ordered
// guard chain; the buy side wins before the sell side is considered.
func (e *Engine) classify(score float64) types.DecisionTag {
	t := e.cfg.Thresholds
	switch {
	case score >= t.StrongBuy:
		return types.StrongBuy
	case score >= t.Buy:
		return types.Buy
	case score <= t.StrongSell:
		return types.StrongSell
	case score <= t.Sell:
		return types.Sell
	default:
		return types.Hold
	}
}

// buildReasoning assembles the human-readable explanation from the same
// conditions the scorers use. Explanatory output only; never parsed.
func buildReasoning(item types.NewsItem, m *types.StockMetrics, combined float64) string {
	reasons := []string{}

	switch item.SentimentLabel {
	case types.SentimentPositive:
		reasons = append(reasons, fmt.Sprintf("Positive news sentiment (%.2f%% confidence)", confidencePct(item)))
	case types.SentimentNegative:
		reasons = append(reasons, fmt.Sprintf("Negative news sentiment (%.2f%% confidence)", confidencePct(item)))
	}

	if m != nil {
		if m.PEGRatio != nil && *m.PEGRatio < 1 {
			reasons = append(reasons, fmt.Sprintf("Strong PEG ratio (%.2f)", *m.PEGRatio))
		}
		if m.ROE != nil && *m.ROE > 15 {
			reasons = append(reasons, fmt.Sprintf("Good ROE (%.1f%%)", *m.ROE))
		}
		if m.IntrinsicValue != nil && m.CurrentPrice != nil && *m.CurrentPrice > 0 {
			ratio := *m.IntrinsicValue / *m.CurrentPrice
			if ratio > 1.2 {
				reasons = append(reasons, fmt.Sprintf("Undervalued (%.1f%% of intrinsic value)", ratio*100))
			} else if ratio < 0.8 {
				reasons = append(reasons, fmt.Sprintf("Overvalued (%.1f%% of intrinsic value)", ratio*100))
			}
		}
		if m.RSI != nil {
			if *m.RSI < 30 {
				reasons = append(reasons, fmt.Sprintf("Oversold RSI (%.1f)", *m.RSI))
			} else if *m.RSI > 70 {
				reasons = append(reasons, fmt.Sprintf("Overbought RSI (%.1f)", *m.RSI))
			}
		}
		if m.MACDHistogram != nil && *m.MACDHistogram != 0 {
			if *m.MACDHistogram > 0 {
				reasons = append(reasons, "Bullish MACD")
			} else {
				reasons = append(reasons, "Bearish MACD")
			}
		}
	}

	reasoning := "No distinguishing factors"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}
	return reasoning + fmt.Sprintf(" | Combined score: %.2f", combined)
}

func confidencePct(item types.NewsItem) float64 {
	if item.SentimentConfidence == nil {
		return 0
	}
	return *item.SentimentConfidence * 100
}
