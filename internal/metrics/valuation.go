package metrics

import "algo-trading-alerts/internal/types"

const (
	dcfGrowthRate   = 0.03
	dcfDiscountRate = 0.10

	// Graham growth default when forward earnings growth is unknown.
	grahamDefaultGrowth = 10.0
)

// DCFValue estimates per-share value from free cash flow via a
// single-stage terminal value: FCF*(1+g)/(r-g) over shares outstanding.
func DCFValue(f types.Fundamentals) (float64, bool) {
	if f.FreeCashFlow == nil || f.SharesOutstanding == nil {
		return 0, false
	}
	fcf, shares := *f.FreeCashFlow, *f.SharesOutstanding
	if fcf == 0 || shares == 0 || dcfDiscountRate == dcfGrowthRate {
		return 0, false
	}
	terminal := fcf * (1 + dcfGrowthRate) / (dcfDiscountRate - dcfGrowthRate)
	return terminal / shares, true
}

// GrahamValue estimates intrinsic value with Benjamin Graham's formula
// EPS * (8.5 + 2g) * 4.4 / 4.5, where g is the forward earnings growth
// rate in percent.
func GrahamValue(f types.Fundamentals) (float64, bool) {
	if f.EPS == nil || *f.EPS == 0 {
		return 0, false
	}
	g := grahamDefaultGrowth
	if f.EarningsGrowth != nil && *f.EarningsGrowth != 0 {
		g = *f.EarningsGrowth * 100.0
	}
	return *f.EPS * (8.5 + 2*g) * 4.4 / 4.5, true
}
