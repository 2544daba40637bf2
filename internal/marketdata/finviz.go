package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"algo-trading-alerts/internal/types"
)

// FinvizFundamentals scrapes the snapshot table on a Finviz quote page
// as a fundamentals fallback.
type FinvizFundamentals struct {
	httpClient *http.Client
}

func NewFinvizFundamentals() *FinvizFundamentals {
	return &FinvizFundamentals{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch parses the label/value cell pairs of the snapshot table.
func (fv *FinvizFundamentals) Fetch(ctx context.Context, ticker string) (types.Fundamentals, error) {
	var f types.Fundamentals

	url := fmt.Sprintf("https://finviz.com/quote.ashx?t=%s", ticker)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return f, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := fv.httpClient.Do(req)
	if err != nil {
		return f, fmt.Errorf("finviz request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return f, fmt.Errorf("finviz http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return f, err
	}

	cells := doc.Find("table.snapshot-table2 td")
	cells.Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		value := strings.TrimSpace(cells.Eq(i + 1).Text())

		switch label {
		case "EPS (ttm)":
			f.EPS = parseFinvizNumber(value)
		case "ROE":
			f.ROE = parseFinvizNumber(value)
		case "PEG":
			f.PEGRatio = parseFinvizNumber(value)
		case "EPS next 5Y":
			if g := parseFinvizNumber(value); g != nil {
				f.EarningsGrowth = types.Float(*g / 100.0)
			}
		case "Shs Outstand":
			f.SharesOutstanding = parseFinvizNumber(value)
		}
	})

	return f, nil
}

// parseFinvizNumber handles Finviz formats: "-", "24.50%", "1.23B".
func parseFinvizNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	s = strings.TrimSuffix(s, "%")

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1e3, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		mult, s = 1e9, strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "T"):
		mult, s = 1e12, strings.TrimSuffix(s, "T")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return types.Float(v * mult)
}
