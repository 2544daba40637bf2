package news

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"algo-trading-alerts/internal/api"
	"algo-trading-alerts/internal/store"
	"algo-trading-alerts/internal/trace"
	"algo-trading-alerts/internal/types"
)

// SentimentAnalyzer annotates news items with polarity, confidence and
// a categorical label using an LLM classifier.
type SentimentAnalyzer struct {
	cfg      *store.Config
	client   *api.Client
	provider string // "OPENAI" or "CLAUDE"
}

// NewSentimentAnalyzer creates a new sentiment analyzer
func NewSentimentAnalyzer(cfg *store.Config) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		cfg:      cfg,
		client:   api.NewClient(api.WithTimeout(30 * time.Second)),
		provider: strings.ToUpper(cfg.LLM.Provider),
	}
}

type sentimentResult struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// AnnotateItem returns a copy of the item with sentiment fields set.
// Classification failures leave the item NEUTRAL with no score rather
// than erroring the pipeline.
func (a *SentimentAnalyzer) AnnotateItem(ctx context.Context, item types.NewsItem) (types.NewsItem, error) {
	ctx, span := trace.StartSpan(ctx, "annotate-news-sentiment")
	defer span.End()

	prompt := a.buildPrompt(item)

	var result sentimentResult
	var err error

	switch a.provider {
	case "OPENAI":
		result, err = a.classifyWithOpenAI(ctx, prompt)
	case "CLAUDE":
		result, err = a.classifyWithClaude(ctx, prompt)
	default:
		err = fmt.Errorf("unsupported LLM provider: %s", a.provider)
	}

	if err != nil {
		item.SentimentLabel = types.SentimentNeutral
		return item, err
	}

	item.SentimentLabel = parseLabel(result.Label)
	item.SentimentScore = types.Float(clampRange(result.Score, -1, 1))
	item.SentimentConfidence = types.Float(clampRange(result.Confidence, 0, 1))
	return item, nil
}

// AnnotateItems annotates a batch, skipping items that fail.
func (a *SentimentAnalyzer) AnnotateItems(ctx context.Context, items []types.NewsItem) []types.NewsItem {
	annotated := make([]types.NewsItem, 0, len(items))
	for i, item := range items {
		out, err := a.AnnotateItem(ctx, item)
		annotated = append(annotated, out)

		// Rate limiting between classifier calls
		if err == nil && i < len(items)-1 {
			time.Sleep(1 * time.Second)
		}
	}
	return annotated
}

func parseLabel(s string) types.SentimentLabel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POSITIVE":
		return types.SentimentPositive
	case "NEGATIVE":
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// buildPrompt creates the classification prompt for a single headline
func (a *SentimentAnalyzer) buildPrompt(item types.NewsItem) string {
	schema := `{
  "label": "POSITIVE|NEGATIVE|NEUTRAL",
  "score": -1.0 to 1.0 (float),
  "confidence": 0.0 to 1.0 (float)
}`

	summary := item.Summary
	if len(summary) > 2000 {
		summary = summary[:2000] + "..."
	}

	return fmt.Sprintf(`Classify the sentiment of this news headline about %s stock for investment purposes.

Headline: %s
Source: %s
Summary: %s

Respond ONLY with valid JSON matching this schema:
%s`, item.Ticker, item.Title, item.Source, summary, schema)
}

const systemPrompt = "You are a financial analyst expert at classifying news sentiment for investment decisions. Respond ONLY with valid JSON."

func (a *SentimentAnalyzer) maxTokens() int {
	if a.cfg.LLM.MaxTokens > 0 {
		return a.cfg.LLM.MaxTokens
	}
	return 200
}

// classifyWithOpenAI performs sentiment classification using OpenAI
func (a *SentimentAnalyzer) classifyWithOpenAI(ctx context.Context, prompt string) (sentimentResult, error) {
	var result sentimentResult

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return result, errors.New("OPENAI_API_KEY missing")
	}

	body := map[string]any{
		"model": a.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.1,
		"max_tokens":  a.maxTokens(),
	}

	resp, err := a.client.POST(ctx, "https://api.openai.com/v1/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return result, err
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return result, err
	}
	if len(r.Choices) == 0 {
		return result, errors.New("no choices")
	}

	return parseResultJSON(r.Choices[0].Message.Content)
}

// classifyWithClaude performs sentiment classification using Claude
func (a *SentimentAnalyzer) classifyWithClaude(ctx context.Context, prompt string) (sentimentResult, error) {
	var result sentimentResult

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return result, errors.New("ANTHROPIC_API_KEY missing")
	}

	body := map[string]any{
		"model":      a.cfg.LLM.Model,
		"max_tokens": a.maxTokens(),
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	resp, err := a.client.POST(ctx, "https://api.anthropic.com/v1/messages", body, map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": "2023-06-01",
	})
	if err != nil {
		return result, err
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return result, err
	}
	if len(r.Content) == 0 {
		return result, errors.New("no content")
	}

	return parseResultJSON(r.Content[0].Text)
}

func parseResultJSON(content string) (sentimentResult, error) {
	var result sentimentResult
	content = strings.TrimSpace(content)
	// Some models wrap the JSON in a code fence
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	if err := (&api.Response{Body: []byte(content)}).ParseJSON(&result); err != nil {
		return result, fmt.Errorf("invalid JSON response: %w", err)
	}
	return result, nil
}
