package marketdata

import (
	"context"
	"fmt"
	"time"

	"algo-trading-alerts/internal/api"
	"algo-trading-alerts/internal/logger"
	"algo-trading-alerts/internal/types"
)

// YahooProvider fetches candles and fundamentals from the Yahoo Finance
// JSON endpoints.
type YahooProvider struct {
	client *api.Client
	finviz *FinvizFundamentals
}

func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		client: api.NewClient(api.WithTimeout(30 * time.Second)),
		finviz: NewFinvizFundamentals(),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches up to `days` daily candles, ascending by time. Bars
// with any missing OHLC value are dropped.
func (y *YahooProvider) History(ctx context.Context, ticker string, days int) ([]types.Candle, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?range=%dd&interval=1d", ticker, days)

	resp, err := y.client.DoWithRetry(api.NewRequest("GET", url).WithContext(ctx), nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart request failed: %w", err)
	}

	var cr chartResponse
	if err := resp.ParseJSON(&cr); err != nil {
		return nil, err
	}
	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", ticker)
	}

	result := cr.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	candles := make([]types.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		c := types.Candle{
			Ts:    ts,
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			c.Vol = *quote.Volume[i]
		}
		candles = append(candles, c)
	}

	return candles, nil
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			DefaultKeyStatistics struct {
				TrailingEps       rawValue `json:"trailingEps"`
				PegRatio          rawValue `json:"pegRatio"`
				SharesOutstanding rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ReturnOnEquity rawValue `json:"returnOnEquity"`
				FreeCashflow   rawValue `json:"freeCashflow"`
				EarningsGrowth rawValue `json:"earningsGrowth"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Fundamentals fetches company facts from quoteSummary, falling back to
// the Finviz snapshot table for whatever Yahoo refused to serve.
func (y *YahooProvider) Fundamentals(ctx context.Context, ticker string) (types.Fundamentals, error) {
	var f types.Fundamentals

	url := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=defaultKeyStatistics,financialData", ticker)

	resp, err := y.client.GET(ctx, url, api.YahooFinanceHeaders())
	if err == nil {
		var qs quoteSummaryResponse
		if perr := resp.ParseJSON(&qs); perr == nil && len(qs.QuoteSummary.Result) > 0 {
			r := qs.QuoteSummary.Result[0]
			f.EPS = r.DefaultKeyStatistics.TrailingEps.Raw
			f.PEGRatio = r.DefaultKeyStatistics.PegRatio.Raw
			f.SharesOutstanding = r.DefaultKeyStatistics.SharesOutstanding.Raw
			f.FreeCashFlow = r.FinancialData.FreeCashflow.Raw
			f.EarningsGrowth = r.FinancialData.EarningsGrowth.Raw
			if roe := r.FinancialData.ReturnOnEquity.Raw; roe != nil {
				f.ROE = types.Float(*roe * 100.0)
			}
		}
	} else {
		logger.Warn(ctx, "Yahoo quoteSummary failed, trying Finviz", "ticker", ticker, "error", err)
	}

	if f.EPS == nil && f.PEGRatio == nil && f.ROE == nil {
		fv, ferr := y.finviz.Fetch(ctx, ticker)
		if ferr != nil {
			if err != nil {
				return f, fmt.Errorf("fundamentals unavailable: %w", err)
			}
			return f, nil
		}
		mergeFundamentals(&f, fv)
	}

	return f, nil
}

// mergeFundamentals fills nil fields of dst from src.
func mergeFundamentals(dst *types.Fundamentals, src types.Fundamentals) {
	if dst.EPS == nil {
		dst.EPS = src.EPS
	}
	if dst.ROE == nil {
		dst.ROE = src.ROE
	}
	if dst.PEGRatio == nil {
		dst.PEGRatio = src.PEGRatio
	}
	if dst.FreeCashFlow == nil {
		dst.FreeCashFlow = src.FreeCashFlow
	}
	if dst.SharesOutstanding == nil {
		dst.SharesOutstanding = src.SharesOutstanding
	}
	if dst.EarningsGrowth == nil {
		dst.EarningsGrowth = src.EarningsGrowth
	}
}
