package marketdata

import (
	"math"
	"testing"
)

func TestParseFinvizNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"6.43", 6.43},
		{"24.50%", 24.50},
		{"1.23B", 1.23e9},
		{"512.30M", 512.3e6},
		{"15.70K", 15.7e3},
		{"2.50T", 2.5e12},
		{"-3.20", -3.2},
	}
	for _, tc := range cases {
		got := parseFinvizNumber(tc.in)
		if got == nil {
			t.Errorf("parseFinvizNumber(%q): expected %f, got nil", tc.in, tc.want)
			continue
		}
		if math.Abs(*got-tc.want) > 1e-6 {
			t.Errorf("parseFinvizNumber(%q): expected %f, got %f", tc.in, tc.want, *got)
		}
	}
}

func TestParseFinvizNumberMissing(t *testing.T) {
	for _, in := range []string{"", "-", "N/A"} {
		if got := parseFinvizNumber(in); got != nil {
			t.Errorf("parseFinvizNumber(%q): expected nil, got %f", in, *got)
		}
	}
}
