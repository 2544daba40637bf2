package marketdata

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"algo-trading-alerts/internal/types"
)

// StaticProvider generates deterministic mock candles and fundamentals
// for offline runs and tests. The same ticker always yields the same
// series.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func seedFor(ticker string) int64 {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	return int64(h.Sum64())
}

func (p *StaticProvider) History(ctx context.Context, ticker string, days int) ([]types.Candle, error) {
	rng := rand.New(rand.NewSource(seedFor(ticker)))

	base := 100 + rng.Float64()*900
	now := time.Now().Truncate(24 * time.Hour)

	candles := make([]types.Candle, 0, days)
	for i := 0; i < days; i++ {
		c := base + float64(i)*0.2 + (rng.Float64()-0.5)*5
		h := c + rng.Float64()*3
		l := c - rng.Float64()*3
		o := l + (h-l)*rng.Float64()
		candles = append(candles, types.Candle{
			Ts:    now.AddDate(0, 0, i-days).Unix(),
			Open:  o,
			High:  h,
			Low:   l,
			Close: c,
			Vol:   rng.Float64() * 1e6,
		})
	}
	return candles, nil
}

func (p *StaticProvider) Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error) {
	rng := rand.New(rand.NewSource(seedFor(ticker) + 1))

	return types.Fundamentals{
		EPS:               types.Float(1 + rng.Float64()*9),
		ROE:               types.Float(5 + rng.Float64()*25),
		PEGRatio:          types.Float(0.5 + rng.Float64()*3),
		FreeCashFlow:      types.Float(1e8 + rng.Float64()*9e9),
		SharesOutstanding: types.Float(1e8 + rng.Float64()*9e9),
		EarningsGrowth:    types.Float(rng.Float64() * 0.3),
	}, nil
}
