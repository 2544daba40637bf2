package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
tickers:
  - AAPL
  - MSFT
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	if cfg.DataSource != "STATIC" {
		t.Errorf("Expected default data source STATIC, got %s", cfg.DataSource)
	}
	if cfg.Weights.Sentiment != 0.4 || cfg.Weights.Fundamental != 0.3 || cfg.Weights.Technical != 0.3 {
		t.Errorf("Expected default weights 0.4/0.3/0.3, got %+v", cfg.Weights)
	}
	if cfg.Thresholds.StrongBuy != 0.6 || cfg.Thresholds.Buy != 0.3 {
		t.Errorf("Expected default buy thresholds 0.6/0.3, got %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.Sell != -0.3 || cfg.Thresholds.StrongSell != -0.6 {
		t.Errorf("Expected default sell thresholds -0.3/-0.6, got %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.HighConfidence != 0.8 {
		t.Errorf("Expected default high confidence 0.8, got %f", cfg.Thresholds.HighConfidence)
	}
	if cfg.Indicators.RSIPeriod != 14 || cfg.Indicators.MACDFast != 12 || cfg.Indicators.MACDSlow != 26 {
		t.Errorf("Expected default indicator windows, got %+v", cfg.Indicators)
	}
	if cfg.Indicators.BollingerPeriod != 20 || cfg.Indicators.BollingerStdDev != 2.0 {
		t.Errorf("Expected default Bollinger params, got %+v", cfg.Indicators)
	}
	if cfg.Indicators.LookbackDays != 180 {
		t.Errorf("Expected default lookback 180, got %d", cfg.Indicators.LookbackDays)
	}
	if cfg.News.MaxArticles != 10 || cfg.News.TimeoutSeconds != 30 || cfg.News.CacheMinutes != 60 {
		t.Errorf("Expected default news settings, got %+v", cfg.News)
	}
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeConfig(t, `
tickers: [NVDA]
data_source: LIVE
poll_minutes: 15
weights:
  sentiment: 0.5
  fundamental: 0.25
  technical: 0.25
thresholds:
  strong_buy: 0.7
  buy: 0.4
  sell: -0.4
  strong_sell: -0.7
  high_confidence: 0.9
indicators:
  rsi_period: 10
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	if cfg.DataSource != "LIVE" {
		t.Errorf("Expected LIVE, got %s", cfg.DataSource)
	}
	if cfg.PollMinutes != 15 {
		t.Errorf("Expected poll_minutes 15, got %d", cfg.PollMinutes)
	}
	if cfg.Weights.Sentiment != 0.5 {
		t.Errorf("Expected sentiment weight 0.5, got %f", cfg.Weights.Sentiment)
	}
	if cfg.Indicators.RSIPeriod != 10 {
		t.Errorf("Expected rsi_period 10, got %d", cfg.Indicators.RSIPeriod)
	}
	// Unset indicator fields still get defaults
	if cfg.Indicators.MACDSlow != 26 {
		t.Errorf("Expected default macd_slow 26, got %d", cfg.Indicators.MACDSlow)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestValidateEmptyTickers(t *testing.T) {
	path := writeConfig(t, `
tickers: []
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error for empty tickers")
	}
}

func TestValidateBadDataSource(t *testing.T) {
	path := writeConfig(t, `
tickers: [AAPL]
data_source: REPLAY
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error for invalid data source")
	}
}

func TestValidateWeightsSum(t *testing.T) {
	path := writeConfig(t, `
tickers: [AAPL]
weights:
  sentiment: 0.5
  fundamental: 0.5
  technical: 0.5
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error for weights not summing to 1")
	}
}

func TestValidateThresholdOrdering(t *testing.T) {
	path := writeConfig(t, `
tickers: [AAPL]
thresholds:
  strong_buy: 0.3
  buy: 0.6
  sell: -0.3
  strong_sell: -0.6
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error for buy above strong_buy")
	}
}

func TestValidateMACDWindows(t *testing.T) {
	path := writeConfig(t, `
tickers: [AAPL]
indicators:
  macd_fast: 26
  macd_slow: 12
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error for macd_fast >= macd_slow")
	}
}
