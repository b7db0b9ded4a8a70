package pricing

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// BuildReport renders a pricing result as a markdown report an artisan can
// read or attach to a listing draft.
func BuildReport(description string, attrs NarrativeAttributes, result PricingResult, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Price Recommendation Report\n\n")
	if attrs.StoryTitle != "" {
		fmt.Fprintf(&b, "- Product: %s\n", attrs.StoryTitle)
	}
	fmt.Fprintf(&b, "- Category: %s\n", result.MarketValidation.Category)
	if attrs.Region != "" {
		fmt.Fprintf(&b, "- Region: %s\n", attrs.Region)
	}
	fmt.Fprintf(&b, "- Date: %s\n\n", generatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	fmt.Fprintf(&b, "## Recommendation\n\n")
	fmt.Fprintf(&b, "Suggested price: **%.2f**, in the range %.2f-%.2f.\n", result.SuggestedPrice, result.PriceRange.Min, result.PriceRange.Max)
	fmt.Fprintf(&b, "Estimated success probability: **%.0f%%**.\n\n", result.SuccessProbability)
	if result.MaterialCost > 0 {
		fmt.Fprintf(&b, "With material cost %.2f the asking total is **%.2f**.\n\n", result.MaterialCost, result.TotalWithMaterials)
	}
	fmt.Fprintf(&b, "%s\n\n", result.Justification)

	fmt.Fprintf(&b, "## Score Breakdown\n\n")
	fmt.Fprintf(&b, "- Heritage: %.1f / 10\n", result.Breakdown.HeritageScore)
	fmt.Fprintf(&b, "- Complexity: %.1f / 10\n", result.Breakdown.ComplexityScore)
	fmt.Fprintf(&b, "- Market demand: %.1f / 10\n", result.Breakdown.MarketScore)
	fmt.Fprintf(&b, "- Combined: %.2f / 10\n", result.Breakdown.CombinedScore)
	fmt.Fprintf(&b, "- Base markup: %.2f\n", result.Breakdown.BasePrice)
	fmt.Fprintf(&b, "- Multiplier: %.2fx\n\n", result.Breakdown.PriceMultiplier)

	fmt.Fprintf(&b, "## Market Validation\n\n")
	fmt.Fprintf(&b, "- Outcome: `%s`\n", result.MarketValidation.AdjustmentReason)
	fmt.Fprintf(&b, "- Raw weighted price: %.2f\n", result.MarketValidation.OriginalPrice)
	fmt.Fprintf(&b, "- Validated price: %.2f\n", result.MarketValidation.AdjustedPrice)
	fmt.Fprintf(&b, "- %s\n\n", result.MarketValidation.Message)

	fmt.Fprintf(&b, "## Product Description\n\n")
	fmt.Fprintf(&b, "%s\n", description)
	return b.String()
}

// ReportHTML converts a markdown report to HTML for embedding in listing
// previews.
func ReportHTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}
