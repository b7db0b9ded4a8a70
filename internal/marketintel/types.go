package marketintel

import "time"

type DemandLevel string

const (
	DemandLow      DemandLevel = "low"
	DemandMedium   DemandLevel = "medium"
	DemandHigh     DemandLevel = "high"
	DemandVeryHigh DemandLevel = "very_high"
)

type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendStable  TrendDirection = "stable"
	TrendFalling TrendDirection = "falling"
)

// CategoryMarketData is the cached market picture for one craft category.
// Invariants: PriceRangeLow <= PriceRangeHigh, TrendScore in [0,100].
// Mutated only by the refresh cycle.
type CategoryMarketData struct {
	PriceRangeLow  float64        `json:"price_range_low"`
	PriceRangeHigh float64        `json:"price_range_high"`
	AverageMarkup  float64        `json:"average_markup"`
	Demand         DemandLevel    `json:"demand"`
	TrendScore     int            `json:"trend_score"`
	TrendDirection TrendDirection `json:"trend_direction"`
	LastUpdated    time.Time      `json:"last_updated"`
}

// SeasonalTrend is the current interest picture for one festival/seasonal
// keyword. Active entries contribute their multiplier to demand scoring.
type SeasonalTrend struct {
	Score      int     `json:"score"`
	Multiplier float64 `json:"multiplier"`
	Active     bool    `json:"active"`
}

type TrendingCraft struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Keyword  string `json:"keyword"`
}

// Snapshot is the market cache aggregate. Readers always see a complete
// snapshot; the refresh cycle builds a new one and swaps it in atomically.
type Snapshot struct {
	Categories     map[string]CategoryMarketData `json:"categories"`
	RegionalScores map[string]int                `json:"regional_scores"`
	SeasonalTrends map[string]SeasonalTrend      `json:"seasonal_trends"`
	TrendingCrafts []TrendingCraft               `json:"trending_crafts"`
	LastUpdated    time.Time                     `json:"last_updated"`
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Categories:     make(map[string]CategoryMarketData, len(s.Categories)),
		RegionalScores: make(map[string]int, len(s.RegionalScores)),
		SeasonalTrends: make(map[string]SeasonalTrend, len(s.SeasonalTrends)),
		TrendingCrafts: make([]TrendingCraft, len(s.TrendingCrafts)),
		LastUpdated:    s.LastUpdated,
	}
	for k, v := range s.Categories {
		out.Categories[k] = v
	}
	for k, v := range s.RegionalScores {
		out.RegionalScores[k] = v
	}
	for k, v := range s.SeasonalTrends {
		out.SeasonalTrends[k] = v
	}
	copy(out.TrendingCrafts, s.TrendingCrafts)
	return out
}

func (s *Snapshot) normalize() {
	if s.Categories == nil {
		s.Categories = map[string]CategoryMarketData{}
	}
	if s.RegionalScores == nil {
		s.RegionalScores = map[string]int{}
	}
	if s.SeasonalTrends == nil {
		s.SeasonalTrends = map[string]SeasonalTrend{}
	}
}
