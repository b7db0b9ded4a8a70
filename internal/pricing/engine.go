package pricing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// Engine orchestrates the three signal scorers, the weighted price
// calculator, and market validation into one pricing recommendation.
// A nil estimator routes complexity to the deterministic heuristic, and a
// nil market view routes the market scorer and validator to their fallbacks.
type Engine struct {
	estimator ComplexityEstimator
	market    MarketView
	now       func() time.Time
}

func NewEngine(estimator ComplexityEstimator, market MarketView) *Engine {
	return &Engine{estimator: estimator, market: market, now: time.Now}
}

// CalculatePrice prices one product. It always returns a usable result:
// scorer failures degrade to fallbacks rather than failing the request.
func (e *Engine) CalculatePrice(ctx context.Context, description string, attrs NarrativeAttributes, materialCost float64) PricingResult {
	heritage := HeritageScore(attrs)
	complexity := ComplexityScore(ctx, e.estimator, description, attrs)
	category := DetectCategory(description, attrs)
	market := marketScoreAt(attrs, category, e.market, e.now().Month())

	comp := ComputePrice(heritage, complexity, market)
	validation := ValidatePrice(category, comp.RawPrice, e.market)
	price := round2(validation.AdjustedPrice)

	return PricingResult{
		SuggestedPrice: price,
		PriceRange: PriceRange{
			Min: round2(price * rangeLowFactor),
			Max: round2(price * rangeHighFactor),
		},
		Justification:      buildJustification(attrs, heritage, complexity, market),
		SuccessProbability: round2(SuccessProbability(comp.CombinedScore)),
		Breakdown: ScoreBreakdown{
			HeritageScore:   round2(heritage),
			ComplexityScore: round2(complexity),
			MarketScore:     round2(market),
			CombinedScore:   round2(comp.CombinedScore),
			BasePrice:       round2(comp.BaseMarkup),
			PriceMultiplier: round2(comp.PriceMultiplier),
		},
		MarketValidation:   validation,
		MaterialCost:       round2(materialCost),
		TotalWithMaterials: round2(price + materialCost),
	}
}

func buildJustification(attrs NarrativeAttributes, heritage, complexity, market float64) string {
	var parts []string
	switch {
	case heritage >= 7:
		parts = append(parts, "High cultural heritage value")
	case heritage >= 4:
		parts = append(parts, "Moderate cultural significance")
	}
	switch {
	case complexity >= 7:
		parts = append(parts, "exceptional craftsmanship complexity")
	case complexity >= 4:
		parts = append(parts, "skilled handwork")
	}
	switch {
	case market >= 7:
		parts = append(parts, "strong current market demand")
	case market >= 4:
		parts = append(parts, "steady market demand")
	}
	if len(attrs.CulturalElements) > 0 {
		n := len(attrs.CulturalElements)
		if n > 2 {
			n = 2
		}
		parts = append(parts, fmt.Sprintf("featuring %s", strings.Join(attrs.CulturalElements[:n], " and ")))
	}
	if attrs.StoryTitle != "" {
		parts = append(parts, fmt.Sprintf("with the story of %q", attrs.StoryTitle))
	}
	if len(parts) == 0 {
		return "Priced on baseline craftsmanship and market conditions."
	}
	return strings.Join(parts, ", ") + "."
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
