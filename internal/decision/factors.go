package decision

import (
	"math"

	"algo-trading-alerts/internal/types"
)

// factor is one optional scoring contribution. A present factor counts
// toward the component average even when its delta is zero; an absent
// factor is excluded entirely.
type factor struct {
	present bool
	delta   float64
}

// averageFactors reduces the present factors to sum/count, clamped to
// [-1, 1]. Zero present factors yields 0.
func averageFactors(fs []factor) float64 {
	sum, n := 0.0, 0
	for _, f := range fs {
		if f.present {
			sum += f.delta
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return clamp(sum / float64(n))
}

func clamp(v float64) float64 {
	return math.Max(-1.0, math.Min(1.0, v))
}

func pegFactor(peg *float64) factor {
	if peg == nil {
		return factor{}
	}
	f := factor{present: true}
	switch {
	case *peg < 1:
		f.delta = 0.5
	case *peg < 2:
		f.delta = 0.2
	case *peg > 3:
		f.delta = -0.3
	}
	return f
}

func roeFactor(roe *float64) factor {
	if roe == nil {
		return factor{}
	}
	f := factor{present: true}
	switch {
	case *roe > 20:
		f.delta = 0.4
	case *roe > 15:
		f.delta = 0.2
	case *roe < 10:
		f.delta = -0.2
	}
	return f
}

func epsFactor(eps *float64) factor {
	if eps == nil {
		return factor{}
	}
	f := factor{present: true}
	switch {
	case *eps > 5:
		f.delta = 0.3
	case *eps > 0:
		f.delta = 0.1
	default:
		f.delta = -0.3
	}
	return f
}

func valueRatioFactor(intrinsic, price *float64) factor {
	if intrinsic == nil || price == nil || *price <= 0 {
		return factor{}
	}
	ratio := *intrinsic / *price
	f := factor{present: true}
	switch {
	case ratio > 1.2:
		f.delta = 0.5
	case ratio > 1.0:
		f.delta = 0.3
	case ratio < 0.8:
		f.delta = -0.5
	case ratio < 1.0:
		f.delta = -0.3
	}
	return f
}

func rsiFactor(rsi *float64) factor {
	if rsi == nil {
		return factor{}
	}
	f := factor{present: true}
	switch {
	case *rsi < 30:
		f.delta = 0.5
	case *rsi < 40:
		f.delta = 0.2
	case *rsi > 70:
		f.delta = -0.5
	case *rsi > 60:
		f.delta = -0.2
	}
	return f
}

func macdFactor(hist *float64) factor {
	if hist == nil {
		return factor{}
	}
	f := factor{present: true, delta: -0.3}
	if *hist > 0 {
		f.delta = 0.3
	}
	return f
}

func bollingerFactor(m *types.StockMetrics) factor {
	if m.CurrentPrice == nil || m.BollingerUpper == nil || m.BollingerLower == nil || m.BollingerMiddle == nil {
		return factor{}
	}
	bandRange := *m.BollingerUpper - *m.BollingerLower
	if bandRange <= 0 {
		return factor{}
	}
	position := (*m.CurrentPrice - *m.BollingerLower) / bandRange
	f := factor{present: true}
	switch {
	case position < 0.2:
		f.delta = 0.4
	case position < 0.4:
		f.delta = 0.2
	case position > 0.8:
		f.delta = -0.4
	case position > 0.6:
		f.delta = -0.2
	}
	return f
}

func drawdownFactor(dd *float64) factor {
	if dd == nil {
		return factor{}
	}
	f := factor{present: true}
	switch {
	case *dd < -30:
		f.delta = -0.3
	case *dd < -20:
		f.delta = -0.1
	}
	return f
}
