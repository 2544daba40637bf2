package metrics

import (
	"gonum.org/v1/gonum/stat"
)

// RSI computes the Relative Strength Index at the most recent bar using
// simple averages of gains and losses over the last period deltas.
// Needs period+1 closes (period deltas); returns ok=false otherwise.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0, true
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100.0 - (100.0 / (1.0 + rs)), true
}

// EMA returns the exponential moving average series with smoothing factor
// 2/(span+1), seeded from the first value, no bias adjustment.
func EMA(vals []float64, span int) []float64 {
	if len(vals) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(vals))
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1.0-alpha)*out[i-1]
	}
	return out
}

// MACD reports the latest MACD line, signal line and histogram values.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist float64, ok bool) {
	if len(closes) == 0 || fast <= 0 || slow <= 0 || signal <= 0 {
		return 0, 0, 0, false
	}
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	sigSeries := EMA(macd, signal)
	last := len(closes) - 1
	return macd[last], sigSeries[last], macd[last] - sigSeries[last], true
}

// Bollinger computes the bands at the latest bar from the trailing window:
// mean +/- k sample standard deviations.
func Bollinger(closes []float64, period int, k float64) (upper, middle, lower float64, ok bool) {
	if period < 2 || len(closes) < period {
		return 0, 0, 0, false
	}
	window := closes[len(closes)-period:]
	mean := stat.Mean(window, nil)
	sd := stat.StdDev(window, nil)
	return mean + k*sd, mean, mean - k*sd, true
}

// Fibonacci emits retracement levels between the window high and low.
func Fibonacci(highs, lows []float64) map[string]float64 {
	if len(highs) == 0 || len(lows) == 0 {
		return nil
	}
	hi, lo := highs[0], lows[0]
	for _, v := range highs {
		if v > hi {
			hi = v
		}
	}
	for _, v := range lows {
		if v < lo {
			lo = v
		}
	}
	diff := hi - lo
	return map[string]float64{
		"0.0":   hi,
		"0.236": hi - 0.236*diff,
		"0.382": hi - 0.382*diff,
		"0.500": hi - 0.500*diff,
		"0.618": hi - 0.618*diff,
		"0.786": hi - 0.786*diff,
		"1.0":   lo,
	}
}

// MaxDrawdown returns the most negative peak-to-trough decline of the
// close series, as a percentage.
func MaxDrawdown(closes []float64) (float64, bool) {
	if len(closes) == 0 {
		return 0, false
	}
	peak := closes[0]
	worst := 0.0
	for _, p := range closes {
		if p > peak {
			peak = p
		}
		if peak != 0 {
			dd := (p - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst * 100.0, true
}
