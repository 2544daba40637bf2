package metrics

import (
	"context"
	"time"

	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/types"
)

// Params holds the indicator windows used by the calculator.
type Params struct {
	RSIPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	BollingerPeriod int
	BollingerStdDev float64
}

func DefaultParams() Params {
	return Params{
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerPeriod: 20,
		BollingerStdDev: 2.0,
	}
}

// ParamsFromConfig maps the indicator section of the config onto Params.
func ParamsFromConfig(cfg *store.Config) Params {
	return Params{
		RSIPeriod:       cfg.Indicators.RSIPeriod,
		MACDFast:        cfg.Indicators.MACDFast,
		MACDSlow:        cfg.Indicators.MACDSlow,
		MACDSignal:      cfg.Indicators.MACDSignal,
		BollingerPeriod: cfg.Indicators.BollingerPeriod,
		BollingerStdDev: cfg.Indicators.BollingerStdDev,
	}
}

// Calculator derives a StockMetrics record from a price history and
// fundamental facts. Every sub-computation is independent: one failing
// for lack of data leaves its field nil without affecting the others.
type Calculator struct {
	p Params
}

func NewCalculator(p Params) *Calculator {
	return &Calculator{p: p}
}

// Compute builds the metrics record. Candles must be ascending by time.
// Returns nil when there is no price history at all; callers then score
// in sentiment-only mode.
func (c *Calculator) Compute(ctx context.Context, ticker string, candles []types.Candle, f types.Fundamentals) *types.StockMetrics {
	if len(candles) == 0 {
		logger.Warn(ctx, "No price history, skipping metrics", "ticker", ticker)
		return nil
	}

	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, cd := range candles {
		closes[i] = cd.Close
		highs[i] = cd.High
		lows[i] = cd.Low
	}

	m := &types.StockMetrics{
		Ticker:     ticker,
		CapturedAt: time.Now(),

		PEGRatio:     cloneFloat(f.PEGRatio),
		ROE:          cloneFloat(f.ROE),
		EPS:          cloneFloat(f.EPS),
		FreeCashFlow: cloneFloat(f.FreeCashFlow),
	}

	m.CurrentPrice = types.Float(closes[len(closes)-1])

	if v, ok := RSI(closes, c.p.RSIPeriod); ok {
		m.RSI = types.Float(v)
	}
	if line, sig, hist, ok := MACD(closes, c.p.MACDFast, c.p.MACDSlow, c.p.MACDSignal); ok {
		m.MACD = types.Float(line)
		m.MACDSignal = types.Float(sig)
		m.MACDHistogram = types.Float(hist)
	}
	if up, mid, low, ok := Bollinger(closes, c.p.BollingerPeriod, c.p.BollingerStdDev); ok {
		m.BollingerUpper = types.Float(up)
		m.BollingerMiddle = types.Float(mid)
		m.BollingerLower = types.Float(low)
	}
	m.FibonacciLevels = Fibonacci(highs, lows)
	if dd, ok := MaxDrawdown(closes); ok {
		m.MaxDrawdown = types.Float(dd)
	}

	if v, ok := DCFValue(f); ok {
		m.DCFValue = types.Float(v)
	}
	if v, ok := GrahamValue(f); ok {
		m.IntrinsicValue = types.Float(v)
	}

	return m
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
