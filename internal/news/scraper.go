package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/types"
)

// Scraper collects headlines for a ticker from financial news sources.
type Scraper struct {
	sources []NewsSource
	timeout time.Duration
}

// NewsSource defines a news source configuration
type NewsSource struct {
	Name      string
	BaseURL   string
	QuotePath string // e.g. "/quote.ashx?t={ticker}"
	Selectors ArticleSelectors
	RateLimit time.Duration
}

// ArticleSelectors defines CSS selectors for extracting article data
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	URL              string
	Summary          string
}

// NewScraper creates a new news scraper with default sources
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: getDefaultSources(),
		timeout: timeout,
	}
}

// getDefaultSources returns the financial news sources to scrape
func getDefaultSources() []NewsSource {
	return []NewsSource{
		{
			Name:      "Finviz",
			BaseURL:   "https://finviz.com",
			QuotePath: "/quote.ashx?t={ticker}",
			Selectors: ArticleSelectors{
				ArticleContainer: "table.fullview-news-outer tr",
				Title:            "a.tab-link-news",
				URL:              "a.tab-link-news",
				Summary:          "a.tab-link-news",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:      "YahooFinance",
			BaseURL:   "https://finance.yahoo.com",
			QuotePath: "/quote/{ticker}",
			Selectors: ArticleSelectors{
				ArticleContainer: "li.js-stream-content, section[data-test=news-stream] li",
				Title:            "h3",
				URL:              "a",
				Summary:          "p",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// ScrapeNews fetches headlines for a ticker from all sources.
func (s *Scraper) ScrapeNews(ctx context.Context, ticker string, maxArticles int) ([]types.NewsItem, error) {
	logger.Info(ctx, "Starting news scraping", "ticker", ticker, "sources", len(s.sources))

	allItems := []types.NewsItem{}
	perSource := maxArticles / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	for _, source := range s.sources {
		items, err := s.scrapeSource(ctx, source, ticker, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape source", err, "source", source.Name, "ticker", ticker)
			continue
		}
		allItems = append(allItems, items...)

		// Rate limiting between sources
		time.Sleep(source.RateLimit)
	}

	logger.Info(ctx, "News scraping completed", "ticker", ticker, "articles", len(allItems))
	return allItems, nil
}

// scrapeSource scrapes headlines from a single news source
func (s *Scraper) scrapeSource(ctx context.Context, source NewsSource, ticker string, maxArticles int) ([]types.NewsItem, error) {
	items := []types.NewsItem{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)

	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(items) >= maxArticles {
			return
		}

		title := strings.TrimSpace(e.ChildText(source.Selectors.Title))
		if title == "" {
			return
		}

		articleURL := e.ChildAttr(source.Selectors.URL, "href")
		if articleURL == "" {
			return
		}
		if !strings.HasPrefix(articleURL, "http") {
			articleURL = source.BaseURL + articleURL
		}

		summary := strings.TrimSpace(e.ChildText(source.Selectors.Summary))

		items = append(items, types.NewsItem{
			Ticker:    ticker,
			Title:     title,
			Summary:   summary,
			URL:       articleURL,
			Source:    source.Name,
			Timestamp: time.Now(),
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", source.Name, "url", r.Request.URL.String())
	})

	quoteURL := source.BaseURL + strings.ReplaceAll(source.QuotePath, "{ticker}", url.PathEscape(ticker))
	if err := c.Visit(quoteURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", quoteURL, err)
	}

	c.Wait()

	return items, nil
}

// getDomain extracts domain from URL
func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
