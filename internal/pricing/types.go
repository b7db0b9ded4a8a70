package pricing

import "github.com/Bhavishya011/Kalpana-AI-Backend/internal/marketintel"

const Disclaimer = "This is a heuristic price recommendation, not a financial valuation. " +
	"Scores are bounded and explainable; final pricing remains the artisan's decision."

// AdjustmentReason explains how the validator treated the raw weighted price.
type AdjustmentReason string

const (
	ReasonBelowMarketMinimum AdjustmentReason = "below_market_minimum"
	ReasonAboveMarketMaximum AdjustmentReason = "above_market_maximum"
	ReasonWithinMarketRange  AdjustmentReason = "within_market_range"
	ReasonNoMarketData       AdjustmentReason = "no_market_data"
	ReasonValidationError    AdjustmentReason = "validation_error"
)

// NarrativeAttributes is the structured output of the upstream narrative
// generator: where the craft is from, what cultural elements the story
// highlights, and the story text itself.
type NarrativeAttributes struct {
	Region           string   `json:"region"`
	CulturalElements []string `json:"cultural_elements"`
	NarrativeText    string   `json:"narrative_text"`
	StoryTitle       string   `json:"story_title"`
}

// MarketView is the read side of the market intelligence cache. A nil view
// routes every consumer to its documented fallback.
type MarketView interface {
	Get(category string) (marketintel.CategoryMarketData, bool)
	CategoryMultiplier(category string) float64
	ActiveSeasonalMultiplier() float64
}

// ScoreBreakdown records how one pricing request was scored. Ephemeral,
// never persisted.
type ScoreBreakdown struct {
	HeritageScore   float64 `json:"heritage_score"`
	ComplexityScore float64 `json:"complexity_score"`
	MarketScore     float64 `json:"market_score"`
	CombinedScore   float64 `json:"combined_score"`
	BasePrice       float64 `json:"base_price"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

type ValidationResult struct {
	Category         string           `json:"category"`
	Validated        bool             `json:"validated"`
	OriginalPrice    float64          `json:"original_price"`
	AdjustedPrice    float64          `json:"adjusted_price"`
	AdjustmentReason AdjustmentReason `json:"adjustment_reason"`
	Message          string           `json:"message"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricingResult is the response for one pricing request. SuggestedPrice is
// always the validated price, never the raw weighted price.
type PricingResult struct {
	SuggestedPrice     float64          `json:"suggested_price"`
	PriceRange         PriceRange       `json:"price_range"`
	Justification      string           `json:"justification"`
	SuccessProbability float64          `json:"success_probability"`
	Breakdown          ScoreBreakdown   `json:"breakdown"`
	MarketValidation   ValidationResult `json:"market_validation"`
	MaterialCost       float64          `json:"material_cost"`
	TotalWithMaterials float64          `json:"total_with_materials"`
}
