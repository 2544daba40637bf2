package news

import (
	"context"
	"fmt"
	"testing"
	"time"

	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/types"
)

func TestNewsCache(t *testing.T) {
	cache := newNewsCache(1 * time.Second)

	ticker := "AAPL"
	items := []types.NewsItem{{
		Ticker:         ticker,
		Title:          "Apple beats earnings expectations",
		SentimentScore: types.Float(0.8),
		SentimentLabel: types.SentimentPositive,
		Timestamp:      time.Now(),
	}}

	// Test set and get
	cache.set(ticker, items)

	retrieved, found := cache.get(ticker)
	if !found {
		t.Fatal("Expected to find cached items")
	}

	if len(retrieved) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(retrieved))
	}

	if retrieved[0].Ticker != ticker {
		t.Errorf("Expected ticker %s, got %s", ticker, retrieved[0].Ticker)
	}

	if *retrieved[0].SentimentScore != 0.8 {
		t.Errorf("Expected score 0.8, got %f", *retrieved[0].SentimentScore)
	}

	// Test expiration
	time.Sleep(2 * time.Second)
	_, found = cache.get(ticker)
	if found {
		t.Error("Expected cache entry to be expired")
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	if cfg.MaxArticles != 10 {
		t.Errorf("Expected MaxArticles to be 10, got %d", cfg.MaxArticles)
	}

	if cfg.CacheDuration != 1*time.Hour {
		t.Errorf("Expected CacheDuration to be 1 hour, got %v", cfg.CacheDuration)
	}

	if !cfg.Enabled {
		t.Error("Expected Enabled to be true")
	}
}

func TestServiceConfigFrom(t *testing.T) {
	botCfg := &store.Config{}
	botCfg.News.MaxArticles = 5
	botCfg.News.CacheMinutes = 30
	botCfg.News.TimeoutSeconds = 10
	botCfg.News.Enabled = true

	cfg := ServiceConfigFrom(botCfg)

	if cfg.MaxArticles != 5 {
		t.Errorf("Expected MaxArticles 5, got %d", cfg.MaxArticles)
	}
	if cfg.CacheDuration != 30*time.Minute {
		t.Errorf("Expected CacheDuration 30m, got %v", cfg.CacheDuration)
	}
	if cfg.ScraperTimeout != 10*time.Second {
		t.Errorf("Expected ScraperTimeout 10s, got %v", cfg.ScraperTimeout)
	}
}

func TestNewService(t *testing.T) {
	botCfg := &store.Config{}
	botCfg.LLM.Provider = "OPENAI"
	botCfg.LLM.Model = "gpt-4o-mini"

	svc := NewService(botCfg, DefaultServiceConfig())

	if svc == nil {
		t.Fatal("Expected service to be created")
	}

	if svc.scraper == nil {
		t.Error("Expected scraper to be initialized")
	}

	if svc.analyzer == nil {
		t.Error("Expected analyzer to be initialized")
	}

	if svc.cache == nil {
		t.Error("Expected cache to be initialized")
	}
}

func TestServiceDisabled(t *testing.T) {
	botCfg := &store.Config{}
	serviceCfg := &ServiceConfig{
		Enabled: false,
	}

	svc := NewService(botCfg, serviceCfg)

	items, err := svc.News(context.Background(), "AAPL")
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if items != nil {
		t.Errorf("Expected no items when disabled, got %d", len(items))
	}
}

func TestServiceUsesCache(t *testing.T) {
	botCfg := &store.Config{}
	svc := NewService(botCfg, DefaultServiceConfig())

	cached := []types.NewsItem{{Ticker: "AAPL", Title: "Cached headline"}}
	svc.cache.set("AAPL", cached)

	items, err := svc.News(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].Title != "Cached headline" {
		t.Errorf("Expected the cached items back, got %+v", items)
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := newNewsCache(100 * time.Millisecond)

	// Add some entries
	for i := 0; i < 5; i++ {
		ticker := fmt.Sprintf("SYM%d", i)
		cache.set(ticker, []types.NewsItem{{Ticker: ticker}})
	}

	// Wait for expiration
	time.Sleep(200 * time.Millisecond)

	// Trigger cleanup
	cache.cleanup()

	// Check that all entries are removed
	cache.mu.RLock()
	count := len(cache.data)
	cache.mu.RUnlock()

	if count != 0 {
		t.Errorf("Expected 0 cache entries after cleanup, got %d", count)
	}
}

func TestCachedTickers(t *testing.T) {
	botCfg := &store.Config{}
	botCfg.LLM.Provider = "OPENAI"

	svc := NewService(botCfg, DefaultServiceConfig())

	tickers := []string{"AAPL", "MSFT", "NVDA"}
	for _, ticker := range tickers {
		svc.cache.set(ticker, []types.NewsItem{{Ticker: ticker}})
	}

	cached := svc.CachedTickers()

	if len(cached) != 3 {
		t.Errorf("Expected 3 cached tickers, got %d", len(cached))
	}
}

func TestClearCache(t *testing.T) {
	botCfg := &store.Config{}
	svc := NewService(botCfg, DefaultServiceConfig())

	svc.cache.set("AAPL", []types.NewsItem{{Ticker: "AAPL"}})

	// Verify it's cached
	if len(svc.CachedTickers()) != 1 {
		t.Fatal("Expected 1 cached ticker")
	}

	svc.ClearCache()

	if len(svc.CachedTickers()) != 0 {
		t.Errorf("Expected 0 cached tickers after clear, got %d", len(svc.CachedTickers()))
	}
}
