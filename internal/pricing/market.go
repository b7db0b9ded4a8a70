package pricing

import (
	"math"
	"strings"
	"time"
)

// Regional demand base scores on the 0-10 scale, before category and
// seasonal multipliers. Ordered so that more specific names win over
// substrings of other regions.
var regionalDemand = []struct {
	region string
	score  float64
}{
	{"rajasthan", 9.0},
	{"gujarat", 8.5},
	{"madhya pradesh", 8.0},
	{"west bengal", 8.0},
	{"uttar pradesh", 8.0},
	{"kerala", 7.5},
	{"karnataka", 7.5},
	{"tamil nadu", 7.5},
	{"odisha", 7.0},
}

const defaultRegionalBase = 5.0

// MarketScore rates current market demand in [0,10]: a regional base scaled
// by the category trend multiplier and, when one is active, the strongest
// seasonal multiplier. With no market view it falls back to a calendar-based
// seasonal estimate.
func MarketScore(attrs NarrativeAttributes, category string, view MarketView) float64 {
	return marketScoreAt(attrs, category, view, time.Now().Month())
}

func marketScoreAt(attrs NarrativeAttributes, category string, view MarketView, month time.Month) float64 {
	score := regionalBase(attrs.Region)
	if view == nil {
		return clampMarket(score * manualSeasonalMultiplier(month))
	}
	score *= view.CategoryMultiplier(category)
	if m := view.ActiveSeasonalMultiplier(); m > 1 {
		score *= m
	}
	return clampMarket(score)
}

func regionalBase(region string) float64 {
	r := strings.ToLower(region)
	for _, rd := range regionalDemand {
		if strings.Contains(r, rd.region) {
			return rd.score
		}
	}
	return defaultRegionalBase
}

// manualSeasonalMultiplier approximates festival demand when no live market
// data is available: Diwali season peaks, then the wedding months, then Holi.
func manualSeasonalMultiplier(month time.Month) float64 {
	switch month {
	case time.October, time.November:
		return 1.3
	case time.December, time.January, time.February:
		return 1.2
	case time.March:
		return 1.1
	default:
		return 1.0
	}
}

func clampMarket(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}
