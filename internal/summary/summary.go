package summary

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"algo-trading-alerts/internal/siglog"
)

type aggRow struct {
	Ticker     string
	Signals    int
	StrongBuy  int
	Buy        int
	Hold       int
	Sell       int
	StrongSell int
	ScoreSum   float64
	MinScore   float64
	MaxScore   float64
}

func logDir() string {
	if v := os.Getenv("ALERTS_LOG_DIR"); v != "" {
		return v
	}
	return "signals"
}

func dailySignalFile(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), d+".jsonl")
}

func summaryCSVPath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), "summary", d+".csv")
}

// SummarizeDay aggregates the day's signal log into a per-ticker CSV.
// Returns the CSV path, or "" when there is nothing to summarize.
func SummarizeDay(t time.Time) (string, error) {
	inPath := dailySignalFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e siglog.Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		row := aggs[e.Ticker]
		if row == nil {
			row = &aggRow{Ticker: e.Ticker, MinScore: e.Score, MaxScore: e.Score}
			aggs[e.Ticker] = row
		}
		row.Signals++
		row.ScoreSum += e.Score
		if e.Score < row.MinScore {
			row.MinScore = e.Score
		}
		if e.Score > row.MaxScore {
			row.MaxScore = e.Score
		}
		switch e.Decision {
		case "STRONG_BUY":
			row.StrongBuy++
		case "BUY":
			row.Buy++
		case "HOLD":
			row.Hold++
		case "SELL":
			row.Sell++
		case "STRONG_SELL":
			row.StrongSell++
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := summaryCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"ticker", "signals", "strong_buy", "buy", "hold", "sell", "strong_sell", "avg_score", "min_score", "max_score"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var total int
	for _, k := range keys {
		r := aggs[k]
		avg := r.ScoreSum / float64(r.Signals)
		rec := []string{
			r.Ticker,
			strconv.Itoa(r.Signals),
			strconv.Itoa(r.StrongBuy),
			strconv.Itoa(r.Buy),
			strconv.Itoa(r.Hold),
			strconv.Itoa(r.Sell),
			strconv.Itoa(r.StrongSell),
			fmt.Sprintf("%.4f", avg),
			fmt.Sprintf("%.4f", r.MinScore),
			fmt.Sprintf("%.4f", r.MaxScore),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		total += r.Signals
	}
	_ = w.Write([]string{"TOTAL", strconv.Itoa(total), "", "", "", "", "", "", "", ""})
	return outPath, nil
}

// SummarizeToday summarizes the current UTC day.
func SummarizeToday() (string, error) { return SummarizeDay(time.Now().UTC()) }
