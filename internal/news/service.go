package news

import (
	"context"
	"sync"
	"time"

	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/types"
)

// Service provides sentiment-annotated news with caching. It implements
// interfaces.SentimentProvider.
type Service struct {
	scraper  *Scraper
	analyzer *SentimentAnalyzer
	cache    *newsCache
	cfg      *ServiceConfig
}

// ServiceConfig configures the news sentiment service
type ServiceConfig struct {
	MaxArticles    int           // Maximum articles to scrape per ticker
	CacheDuration  time.Duration // How long to cache annotated news
	ScraperTimeout time.Duration // Timeout for scraping operations
	Enabled        bool          // Whether news collection is enabled
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxArticles:    10,
		CacheDuration:  1 * time.Hour,
		ScraperTimeout: 30 * time.Second,
		Enabled:        true,
	}
}

// ServiceConfigFrom maps the news section of the main config.
func ServiceConfigFrom(cfg *store.Config) *ServiceConfig {
	return &ServiceConfig{
		MaxArticles:    cfg.News.MaxArticles,
		CacheDuration:  time.Duration(cfg.News.CacheMinutes) * time.Minute,
		ScraperTimeout: time.Duration(cfg.News.TimeoutSeconds) * time.Second,
		Enabled:        cfg.News.Enabled,
	}
}

// newsCache stores annotated items temporarily
type newsCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	items     []types.NewsItem
	timestamp time.Time
}

func newNewsCache(ttl time.Duration) *newsCache {
	cache := &newsCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}

	go cache.cleanupLoop()

	return cache
}

func (c *newsCache) get(ticker string) ([]types.NewsItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[ticker]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}
	return entry.items, true
}

func (c *newsCache) set(ticker string, items []types.NewsItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[ticker] = &cacheEntry{
		items:     items,
		timestamp: time.Now(),
	}
}

func (c *newsCache) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *newsCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for ticker, entry := range c.data {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.data, ticker)
		}
	}
}

// NewService creates a new news sentiment service
func NewService(botCfg *store.Config, serviceCfg *ServiceConfig) *Service {
	if serviceCfg == nil {
		serviceCfg = DefaultServiceConfig()
	}

	return &Service{
		scraper:  NewScraper(serviceCfg.ScraperTimeout),
		analyzer: NewSentimentAnalyzer(botCfg),
		cache:    newNewsCache(serviceCfg.CacheDuration),
		cfg:      serviceCfg,
	}
}

// News returns sentiment-annotated items for a ticker (cached or fresh).
// Scraper or classifier failures degrade to fewer or neutral items
// rather than an error; the pipeline continues with what it got.
func (s *Service) News(ctx context.Context, ticker string) ([]types.NewsItem, error) {
	if !s.cfg.Enabled {
		return nil, nil
	}

	if cached, ok := s.cache.get(ticker); ok {
		logger.Info(ctx, "Using cached news", "ticker", ticker, "items", len(cached))
		return cached, nil
	}

	logger.Info(ctx, "Fetching fresh news", "ticker", ticker)
	items, err := s.scraper.ScrapeNews(ctx, ticker, s.cfg.MaxArticles)
	if err != nil {
		return nil, err
	}

	annotated := s.analyzer.AnnotateItems(ctx, items)
	s.cache.set(ticker, annotated)

	return annotated, nil
}

// Refresh forces a fresh scrape for a ticker (bypasses cache).
func (s *Service) Refresh(ctx context.Context, ticker string) ([]types.NewsItem, error) {
	items, err := s.scraper.ScrapeNews(ctx, ticker, s.cfg.MaxArticles)
	if err != nil {
		return nil, err
	}

	annotated := s.analyzer.AnnotateItems(ctx, items)
	s.cache.set(ticker, annotated)
	return annotated, nil
}

// ClearCache removes all cached news
func (s *Service) ClearCache() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.cache.data = make(map[string]*cacheEntry)
}

// CachedTickers returns tickers with cached news
func (s *Service) CachedTickers() []string {
	s.cache.mu.RLock()
	defer s.cache.mu.RUnlock()

	tickers := make([]string, 0, len(s.cache.data))
	for ticker := range s.cache.data {
		tickers = append(tickers, ticker)
	}
	return tickers
}
