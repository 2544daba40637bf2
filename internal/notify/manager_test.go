package notify

import (
	"context"
	"fmt"
	"testing"

	"algo-trading-alerts/internal/types"
)

func signalWith(decision types.DecisionTag) types.TradingSignal {
	return types.TradingSignal{
		News:      types.NewsItem{Ticker: "AAPL", Title: "Earnings beat"},
		Decision:  decision,
		Score:     0.7,
		Reasoning: "Positive news sentiment (90.00% confidence) | Combined score: 0.70",
	}
}

func TestNotifySignalStrongOnly(t *testing.T) {
	m := NewManager(true, 10, 0.8)
	ctx := context.Background()

	m.NotifySignal(ctx, signalWith(types.Hold))
	m.NotifySignal(ctx, signalWith(types.Buy))
	m.NotifySignal(ctx, signalWith(types.Sell))

	if len(m.Recent()) != 0 {
		t.Errorf("Expected no alerts for non-strong decisions, got %d", len(m.Recent()))
	}

	m.NotifySignal(ctx, signalWith(types.StrongBuy))
	m.NotifySignal(ctx, signalWith(types.StrongSell))

	alerts := m.Recent()
	if len(alerts) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(alerts))
	}
	// Newest first
	if alerts[0].Title != "STRONG_SELL: AAPL" {
		t.Errorf("Expected newest alert first, got %s", alerts[0].Title)
	}
}

func TestNotifyNewsConfidenceGate(t *testing.T) {
	m := NewManager(true, 10, 0.8)
	ctx := context.Background()

	item := types.NewsItem{
		Ticker:         "MSFT",
		Title:          "Cloud revenue surges",
		SentimentLabel: types.SentimentPositive,
	}

	// No confidence at all
	m.NotifyNews(ctx, item)
	if len(m.Recent()) != 0 {
		t.Error("Expected no alert without confidence")
	}

	// Below threshold
	item.SentimentConfidence = types.Float(0.5)
	m.NotifyNews(ctx, item)
	if len(m.Recent()) != 0 {
		t.Error("Expected no alert below confidence threshold")
	}

	// At threshold
	item.SentimentConfidence = types.Float(0.8)
	m.NotifyNews(ctx, item)
	if len(m.Recent()) != 1 {
		t.Fatalf("Expected 1 alert at threshold, got %d", len(m.Recent()))
	}
}

func TestNotifyNewsNeutralSkipped(t *testing.T) {
	m := NewManager(true, 10, 0.8)

	item := types.NewsItem{
		Ticker:              "MSFT",
		Title:               "Quarterly report scheduled",
		SentimentLabel:      types.SentimentNeutral,
		SentimentConfidence: types.Float(0.95),
	}

	m.NotifyNews(context.Background(), item)
	if len(m.Recent()) != 0 {
		t.Error("Expected no alert for neutral sentiment")
	}
}

func TestManagerDisabled(t *testing.T) {
	m := NewManager(false, 10, 0.8)
	ctx := context.Background()

	m.NotifySignal(ctx, signalWith(types.StrongBuy))
	m.NotifyNews(ctx, types.NewsItem{
		Ticker:              "AAPL",
		SentimentLabel:      types.SentimentPositive,
		SentimentConfidence: types.Float(0.99),
	})

	if len(m.Recent()) != 0 {
		t.Errorf("Expected no alerts when disabled, got %d", len(m.Recent()))
	}
}

func TestAlertBufferBounded(t *testing.T) {
	m := NewManager(true, 3, 0.8)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		sig := signalWith(types.StrongBuy)
		sig.News.Ticker = fmt.Sprintf("T%d", i)
		sig.News.Title = fmt.Sprintf("Headline %d", i)
		m.NotifySignal(ctx, sig)
	}

	alerts := m.Recent()
	if len(alerts) != 3 {
		t.Fatalf("Expected buffer capped at 3, got %d", len(alerts))
	}
	if alerts[0].Ticker != "T4" {
		t.Errorf("Expected newest alert first, got %s", alerts[0].Ticker)
	}
	if alerts[2].Ticker != "T2" {
		t.Errorf("Expected oldest kept alert to be T2, got %s", alerts[2].Ticker)
	}
}

func TestClear(t *testing.T) {
	m := NewManager(true, 10, 0.8)

	m.NotifySignal(context.Background(), signalWith(types.StrongBuy))
	if len(m.Recent()) != 1 {
		t.Fatal("Expected 1 alert")
	}

	m.Clear()
	if len(m.Recent()) != 0 {
		t.Errorf("Expected 0 alerts after clear, got %d", len(m.Recent()))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
	if got := truncate("a very long headline indeed", 10); got != "a very lon..." {
		t.Errorf("Expected truncated string, got %q", got)
	}
}
