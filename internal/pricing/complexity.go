package pricing

import (
	"context"
	"log"
	"math"
	"strings"
)

// ComplexityEstimator rates craftsmanship complexity from the product
// description on a 1-10 scale. Implementations must return a score already
// clamped to that range.
type ComplexityEstimator interface {
	EstimateComplexity(ctx context.Context, description string) (float64, error)
}

var techniqueKeywords = []string{
	"block printing", "hand embroidery", "mirror work", "zardozi",
	"meenakari", "filigree", "inlay", "carving", "etching", "engraving",
	"weaving", "dyeing", "bandhani", "ikat", "applique", "quilting",
	"beadwork", "stone setting", "gilding", "lacquer", "repousse",
	"chikankari", "phulkari", "zari", "kantha",
}

// ComplexityScore rates craftsmanship complexity in [1,10]: the estimator's
// base score plus the technique bonus for named advanced techniques in the
// text. Absent or failing estimators route to the heuristic, which already
// folds the bonus in.
func ComplexityScore(ctx context.Context, estimator ComplexityEstimator, description string, attrs NarrativeAttributes) float64 {
	if estimator == nil {
		return HeuristicComplexity(description, attrs)
	}
	base, err := estimator.EstimateComplexity(ctx, description)
	if err != nil {
		log.Printf("complexity estimator failed, using heuristic: %v", err)
		return HeuristicComplexity(description, attrs)
	}
	text := strings.ToLower(description + " " + attrs.NarrativeText)
	return clampScore(base + techniqueBonus(text))
}

// HeuristicComplexity is the deterministic fallback when no LLM estimator is
// configured or the configured one fails. Starts from a baseline of 5 and
// adds for workmanship signals in the text.
func HeuristicComplexity(description string, attrs NarrativeAttributes) float64 {
	text := strings.ToLower(description + " " + attrs.NarrativeText)

	score := 5.0
	if strings.Contains(text, "hand-painted") || strings.Contains(text, "hand painted") {
		score += 1.5
	}
	if strings.Contains(text, "intricate") || strings.Contains(text, "detailed") || strings.Contains(text, "elaborate") {
		score += 1
	}
	if strings.Contains(text, "multi-layered") || strings.Contains(text, "multi-colored") || strings.Contains(text, "multicolored") {
		score += 1
	}
	if strings.Contains(text, "peacock") || strings.Contains(text, "lotus") || strings.Contains(text, "floral") {
		score += 1
	}
	if len(attrs.CulturalElements) > 3 {
		score += 1
	}
	if strings.Contains(text, "days") || strings.Contains(text, "weeks") ||
		strings.Contains(text, "hours") || strings.Contains(text, "time-consuming") {
		score += 1
	}
	score += techniqueBonus(text)
	return clampScore(score)
}

// techniqueBonus adds 0.5 per recognized named technique, capped at +3.
func techniqueBonus(text string) float64 {
	bonus := 0.0
	for _, kw := range techniqueKeywords {
		if strings.Contains(text, kw) {
			bonus += 0.5
		}
	}
	return math.Min(3, bonus)
}

func clampScore(v float64) float64 {
	return math.Max(1, math.Min(10, v))
}
