package types

import "time"

type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Fundamentals holds company facts as reported by a market-data provider.
// A nil field means the provider had no value, never zero.
type Fundamentals struct {
	EPS               *float64 // trailing earnings per share
	ROE               *float64 // return on equity, percent
	PEGRatio          *float64
	FreeCashFlow      *float64
	SharesOutstanding *float64
	EarningsGrowth    *float64 // forward growth rate as a fraction, e.g. 0.12
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// NewsItem is one scraped headline, optionally annotated with sentiment.
type NewsItem struct {
	Ticker    string    `json:"ticker"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	SentimentScore      *float64       `json:"sentiment_score,omitempty"`      // [-1, 1]
	SentimentConfidence *float64       `json:"sentiment_confidence,omitempty"` // [0, 1]
	SentimentLabel      SentimentLabel `json:"sentiment_label,omitempty"`
}

// StockMetrics is the computed metrics record for one ticker.
// Every numeric field is nil when the inputs were insufficient to
// compute it; downstream scoring excludes nil fields rather than
// treating them as zero.
type StockMetrics struct {
	Ticker     string    `json:"ticker"`
	CapturedAt time.Time `json:"captured_at"`

	PEGRatio       *float64 `json:"peg_ratio,omitempty"`
	ROE            *float64 `json:"roe,omitempty"`
	EPS            *float64 `json:"eps,omitempty"`
	FreeCashFlow   *float64 `json:"free_cash_flow,omitempty"`
	DCFValue       *float64 `json:"dcf_value,omitempty"`
	IntrinsicValue *float64 `json:"intrinsic_value,omitempty"`

	RSI             *float64           `json:"rsi,omitempty"`
	MACD            *float64           `json:"macd,omitempty"`
	MACDSignal      *float64           `json:"macd_signal,omitempty"`
	MACDHistogram   *float64           `json:"macd_histogram,omitempty"`
	FibonacciLevels map[string]float64 `json:"fibonacci_levels,omitempty"`
	BollingerUpper  *float64           `json:"bollinger_upper,omitempty"`
	BollingerMiddle *float64           `json:"bollinger_middle,omitempty"`
	BollingerLower  *float64           `json:"bollinger_lower,omitempty"`
	MaxDrawdown     *float64           `json:"max_drawdown,omitempty"` // percent, negative
	CurrentPrice    *float64           `json:"current_price,omitempty"`
}

type DecisionTag string

const (
	StrongBuy  DecisionTag = "STRONG_BUY"
	Buy        DecisionTag = "BUY"
	Hold       DecisionTag = "HOLD"
	Sell       DecisionTag = "SELL"
	StrongSell DecisionTag = "STRONG_SELL"
)

// TradingSignal is the engine output for one (news item, ticker) pair.
// Never mutated after creation.
type TradingSignal struct {
	News      NewsItem      `json:"news"`
	Metrics   *StockMetrics `json:"metrics,omitempty"`
	Decision  DecisionTag   `json:"decision"`
	Score     float64       `json:"score"`
	Reasoning string        `json:"reasoning"`
}

// Float returns a pointer to v; convenience for optional fields.
func Float(v float64) *float64 { return &v }
