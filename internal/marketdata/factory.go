package marketdata

import (
	"algo-trading-alerts/internal/interfaces"
	"algo-trading-alerts/internal/store"
)

// New returns the provider matching the configured data source.
func New(cfg *store.Config) interfaces.MarketData {
	if cfg.DataSource == "LIVE" {
		return NewYahooProvider()
	}
	return NewStaticProvider()
}
