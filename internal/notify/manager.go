package notify

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/types"
)

// Alert is one dispatched notification, retained in memory for
// inspection after a run.
type Alert struct {
	Ticker    string    `json:"ticker"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Manager dispatches alerts for strong trading signals and
// high-confidence news. Alerts go to the console and into a bounded
// in-memory buffer, newest first.
type Manager struct {
	mu        sync.RWMutex
	alerts    []Alert
	maxStored int
	enabled   bool

	highConfidence float64
}

func NewManager(enabled bool, maxStored int, highConfidence float64) *Manager {
	if maxStored <= 0 {
		maxStored = 100
	}
	return &Manager{
		maxStored:      maxStored,
		enabled:        enabled,
		highConfidence: highConfidence,
	}
}

// NotifySignal alerts on STRONG_BUY / STRONG_SELL decisions.
func (m *Manager) NotifySignal(ctx context.Context, signal types.TradingSignal) {
	if !m.enabled {
		return
	}
	if signal.Decision != types.StrongBuy && signal.Decision != types.StrongSell {
		return
	}

	title := fmt.Sprintf("%s: %s", signal.Decision, signal.News.Ticker)
	message := fmt.Sprintf("Score: %.2f\nNews: %s\nReasoning: %s",
		signal.Score, truncate(signal.News.Title, 80), truncate(signal.Reasoning, 150))

	m.dispatch(ctx, signal.News.Ticker, title, message)
}

// NotifyNews alerts on strongly polarized, high-confidence headlines
// regardless of the eventual trading decision.
func (m *Manager) NotifyNews(ctx context.Context, item types.NewsItem) {
	if !m.enabled {
		return
	}
	if item.SentimentConfidence == nil || *item.SentimentConfidence < m.highConfidence {
		return
	}

	var title string
	switch item.SentimentLabel {
	case types.SentimentPositive:
		title = fmt.Sprintf("Highly positive news: %s", item.Ticker)
	case types.SentimentNegative:
		title = fmt.Sprintf("Highly negative news: %s", item.Ticker)
	default:
		return
	}

	message := fmt.Sprintf("Title: %s\nConfidence: %.0f%%\nSource: %s\nURL: %s",
		truncate(item.Title, 100), *item.SentimentConfidence*100, item.Source, item.URL)

	m.dispatch(ctx, item.Ticker, title, message)
}

func (m *Manager) dispatch(ctx context.Context, ticker, title, message string) {
	m.mu.Lock()
	m.alerts = append([]Alert{{
		Ticker:    ticker,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}}, m.alerts...)
	if len(m.alerts) > m.maxStored {
		m.alerts = m.alerts[:m.maxStored]
	}
	m.mu.Unlock()

	logger.Alert(ctx, ticker, title)
	consoleAlert(title, message)
}

// consoleAlert prints a banner to stderr so alerts stand out from the
// structured log stream on stdout.
func consoleAlert(title, message string) {
	fmt.Fprintf(os.Stderr, "\n%s\nALERT: %s\n%s\n%s\n%s\n\n",
		divider, title, divider, message, divider)
}

const divider = "============================================================"

// Recent returns the stored alerts, newest first.
func (m *Manager) Recent() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Clear drops all stored alerts.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
