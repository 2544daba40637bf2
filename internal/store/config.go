package store

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Tickers     []string `yaml:"tickers"`
	DataSource  string   `yaml:"data_source"` // STATIC or LIVE
	PollMinutes int      `yaml:"poll_minutes"` // 0 = single run

	Weights struct {
		Sentiment   float64 `yaml:"sentiment"`
		Fundamental float64 `yaml:"fundamental"`
		Technical   float64 `yaml:"technical"`
	} `yaml:"weights"`

	Thresholds struct {
		StrongBuy      float64 `yaml:"strong_buy"`
		Buy            float64 `yaml:"buy"`
		Sell           float64 `yaml:"sell"`
		StrongSell     float64 `yaml:"strong_sell"`
		HighConfidence float64 `yaml:"high_confidence"`
	} `yaml:"thresholds"`

	Indicators struct {
		RSIPeriod       int     `yaml:"rsi_period"`
		MACDFast        int     `yaml:"macd_fast"`
		MACDSlow        int     `yaml:"macd_slow"`
		MACDSignal      int     `yaml:"macd_signal"`
		BollingerPeriod int     `yaml:"bollinger_period"`
		BollingerStdDev float64 `yaml:"bollinger_stddev"`
		LookbackDays    int     `yaml:"lookback_days"`
	} `yaml:"indicators"`

	News struct {
		MaxArticles    int  `yaml:"max_articles"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
		CacheMinutes   int  `yaml:"cache_minutes"`
		Enabled        bool `yaml:"enabled"`
	} `yaml:"news"`

	LLM struct {
		Provider  string `yaml:"provider"` // OPENAI or CLAUDE
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
	} `yaml:"llm"`

	Notifications struct {
		Enabled   bool `yaml:"enabled"`
		MaxStored int  `yaml:"max_stored"`
	} `yaml:"notifications"`

	Storage struct {
		Append        bool `yaml:"append"`
		RetentionDays int  `yaml:"retention_days"`
	} `yaml:"storage"`
}

func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return errors.New("tickers cannot be empty")
	}
	if c.DataSource != "STATIC" && c.DataSource != "LIVE" {
		return fmt.Errorf("invalid data_source '%s': must be 'STATIC' or 'LIVE'", c.DataSource)
	}
	sum := c.Weights.Sentiment + c.Weights.Fundamental + c.Weights.Technical
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
	t := c.Thresholds
	if !(t.StrongSell < t.Sell && t.Sell <= 0 && 0 <= t.Buy && t.Buy < t.StrongBuy) {
		return fmt.Errorf("thresholds must satisfy strong_sell < sell <= 0 <= buy < strong_buy, got %.2f/%.2f/%.2f/%.2f",
			t.StrongSell, t.Sell, t.Buy, t.StrongBuy)
	}
	if t.HighConfidence < 0 || t.HighConfidence > 1 {
		return fmt.Errorf("thresholds.high_confidence must be in [0,1], got %.2f", t.HighConfidence)
	}
	if c.Indicators.RSIPeriod <= 0 {
		return fmt.Errorf("indicators.rsi_period must be positive, got %d", c.Indicators.RSIPeriod)
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast (%d) must be less than macd_slow (%d)",
			c.Indicators.MACDFast, c.Indicators.MACDSlow)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.DataSource == "" {
		c.DataSource = "STATIC"
	}
	if c.Weights.Sentiment == 0 && c.Weights.Fundamental == 0 && c.Weights.Technical == 0 {
		c.Weights.Sentiment = 0.4
		c.Weights.Fundamental = 0.3
		c.Weights.Technical = 0.3
	}
	if c.Thresholds.StrongBuy == 0 && c.Thresholds.Buy == 0 {
		c.Thresholds.StrongBuy = 0.6
		c.Thresholds.Buy = 0.3
		c.Thresholds.Sell = -0.3
		c.Thresholds.StrongSell = -0.6
	}
	if c.Thresholds.HighConfidence == 0 {
		c.Thresholds.HighConfidence = 0.8
	}
	applyIndicatorDefaults(&c)
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 10
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 30
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
	if c.Notifications.MaxStored == 0 {
		c.Notifications.MaxStored = 100
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyIndicatorDefaults(c *Config) {
	ind := &c.Indicators
	if ind.RSIPeriod == 0 {
		ind.RSIPeriod = 14
	}
	if ind.MACDFast == 0 {
		ind.MACDFast = 12
	}
	if ind.MACDSlow == 0 {
		ind.MACDSlow = 26
	}
	if ind.MACDSignal == 0 {
		ind.MACDSignal = 9
	}
	if ind.BollingerPeriod == 0 {
		ind.BollingerPeriod = 20
	}
	if ind.BollingerStdDev == 0 {
		ind.BollingerStdDev = 2.0
	}
	if ind.LookbackDays == 0 {
		ind.LookbackDays = 180
	}
}
