package siglog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"algo-trading-alerts/internal/types"
)

var mu sync.Mutex

// Entry is one persisted trading signal, written as a JSON line to the
// daily signal log.
type Entry struct {
	Time      string   `json:"time"`
	Ticker    string   `json:"ticker"`
	Decision  string   `json:"decision"`
	Score     float64  `json:"score"`
	Reasoning string   `json:"reasoning"`
	Headline  string   `json:"headline"`
	Source    string   `json:"source"`
	URL       string   `json:"url"`
	RSI       *float64 `json:"rsi,omitempty"`
	Price     *float64 `json:"price,omitempty"`
}

func logDir() string {
	if v := os.Getenv("ALERTS_LOG_DIR"); v != "" {
		return v
	}
	return "signals"
}

func dailyFilepath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), d+".jsonl")
}

// Append writes one signal to today's log file.
func Append(sig types.TradingSignal) error {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().UTC()
	e := Entry{
		Time:      now.Format("2006-01-02 15:04:05"),
		Ticker:    sig.News.Ticker,
		Decision:  string(sig.Decision),
		Score:     sig.Score,
		Reasoning: sig.Reasoning,
		Headline:  sig.News.Title,
		Source:    sig.News.Source,
		URL:       sig.News.URL,
	}
	if sig.Metrics != nil {
		e.RSI = sig.Metrics.RSI
		e.Price = sig.Metrics.CurrentPrice
	}

	p := dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(e)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// Truncate removes today's log file; used when the run is configured to
// overwrite instead of append.
func Truncate() error {
	mu.Lock()
	defer mu.Unlock()

	p := dailyFilepath(time.Now().UTC())
	err := os.Remove(p)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CompressOlder gzips signal logs older than retentionDays and removes
// the originals.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	root := logDir()
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if info.ModTime().Before(cutoff) {
			compressFile(p)
		}
		return nil
	})
}

func compressFile(p string) {
	gz := p + ".gz"
	if _, err := os.Stat(gz); err == nil {
		_ = os.Remove(p)
		return
	}

	in, err := os.Open(p)
	if err != nil {
		return
	}
	defer in.Close()

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err == nil {
		_ = gw.Close()
		_ = out.Close()
		_ = os.Remove(p)
	} else {
		_ = gw.Close()
		_ = out.Close()
	}
}
