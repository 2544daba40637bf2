package news

import (
	"testing"

	"algo-trading-alerts/internal/types"
)

func TestParseLabel(t *testing.T) {
	cases := []struct {
		in   string
		want types.SentimentLabel
	}{
		{"POSITIVE", types.SentimentPositive},
		{"positive", types.SentimentPositive},
		{" Negative ", types.SentimentNegative},
		{"NEUTRAL", types.SentimentNeutral},
		{"bullish", types.SentimentNeutral},
		{"", types.SentimentNeutral},
	}
	for _, tc := range cases {
		if got := parseLabel(tc.in); got != tc.want {
			t.Errorf("parseLabel(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestClampRange(t *testing.T) {
	if v := clampRange(1.5, -1, 1); v != 1 {
		t.Errorf("Expected 1, got %f", v)
	}
	if v := clampRange(-2, -1, 1); v != -1 {
		t.Errorf("Expected -1, got %f", v)
	}
	if v := clampRange(0.3, -1, 1); v != 0.3 {
		t.Errorf("Expected 0.3, got %f", v)
	}
}

func TestParseResultJSON(t *testing.T) {
	result, err := parseResultJSON(`{"label":"POSITIVE","score":0.8,"confidence":0.9}`)
	if err != nil {
		t.Fatalf("Expected parse to succeed, got %v", err)
	}
	if result.Label != "POSITIVE" || result.Score != 0.8 || result.Confidence != 0.9 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestParseResultJSONCodeFence(t *testing.T) {
	content := "```json\n{\"label\":\"NEGATIVE\",\"score\":-0.6,\"confidence\":0.7}\n```"

	result, err := parseResultJSON(content)
	if err != nil {
		t.Fatalf("Expected fenced JSON to parse, got %v", err)
	}
	if result.Label != "NEGATIVE" || result.Score != -0.6 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestParseResultJSONInvalid(t *testing.T) {
	if _, err := parseResultJSON("not json at all"); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
