package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/Bhavishya011/Kalpana-AI-Backend/internal/marketintel"
)

// stubView lets tests pin the market multipliers directly.
type stubView struct {
	data     map[string]marketintel.CategoryMarketData
	catMult  float64
	seasonal float64
}

func (v *stubView) Get(category string) (marketintel.CategoryMarketData, bool) {
	d, ok := v.data[category]
	return d, ok
}

func (v *stubView) CategoryMultiplier(string) float64 { return v.catMult }

func (v *stubView) ActiveSeasonalMultiplier() float64 { return v.seasonal }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRegionalBase(t *testing.T) {
	cases := []struct {
		region string
		want   float64
	}{
		{"Rajasthan", 9.0},
		{"Jaipur, Rajasthan", 9.0},
		{"Gujarat", 8.5},
		{"Kerala", 7.5},
		{"somewhere else", 5.0},
		{"", 5.0},
	}
	for _, tc := range cases {
		if got := regionalBase(tc.region); got != tc.want {
			t.Fatalf("%q: got %v want %v", tc.region, got, tc.want)
		}
	}
}

func TestMarketScoreWithView(t *testing.T) {
	attrs := NarrativeAttributes{Region: "Rajasthan"}
	view := &stubView{catMult: 1.05, seasonal: 1.0}
	// 9.0 * 1.05 = 9.45, inactive seasonal (1.0) not applied.
	if got := marketScoreAt(attrs, "pottery", view, time.June); !almostEqual(got, 9.45) {
		t.Fatalf("got %v want 9.45", got)
	}
}

func TestMarketScoreCappedAtTen(t *testing.T) {
	attrs := NarrativeAttributes{Region: "Rajasthan"}
	view := &stubView{catMult: 1.2, seasonal: 1.3}
	if got := marketScoreAt(attrs, "pottery", view, time.June); got != 10 {
		t.Fatalf("got %v want capped 10", got)
	}
}

func TestMarketScoreManualSeasonalFallback(t *testing.T) {
	attrs := NarrativeAttributes{Region: "Kerala"}
	cases := []struct {
		month time.Month
		want  float64
	}{
		{time.October, 9.75}, // 7.5 * 1.3
		{time.December, 9.0}, // 7.5 * 1.2
		{time.March, 8.25},   // 7.5 * 1.1
		{time.June, 7.5},
	}
	for _, tc := range cases {
		if got := marketScoreAt(attrs, "pottery", nil, tc.month); !almostEqual(got, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.month, got, tc.want)
		}
	}
}

func TestMarketScoreUnknownRegionDefault(t *testing.T) {
	if got := marketScoreAt(NarrativeAttributes{}, "pottery", nil, time.June); got != 5 {
		t.Fatalf("got %v want default 5", got)
	}
}
