package pricing

import (
	"fmt"
	"log"
)

// Band tolerance: prices up to 20% above the category high pass unclamped,
// and below-band prices are lifted to 10% above the category low.
const (
	aboveBandTolerance = 1.2
	belowBandLift      = 1.1
)

// ValidatePrice clamps a raw price against the category's market band. It
// never fails the pricing request: missing market data and internal panics
// both degrade to passing the price through with a reason code.
func ValidatePrice(category string, price float64, view MarketView) (result ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("price validation panic for category %s: %v", category, r)
			result = ValidationResult{
				Category:         category,
				Validated:        false,
				OriginalPrice:    price,
				AdjustedPrice:    price,
				AdjustmentReason: ReasonValidationError,
				Message:          "validation unavailable, using unadjusted price",
			}
		}
	}()

	result = ValidationResult{
		Category:      category,
		OriginalPrice: price,
		AdjustedPrice: price,
	}
	if view == nil {
		result.AdjustmentReason = ReasonNoMarketData
		result.Message = "no market data available for validation"
		return result
	}
	data, ok := view.Get(category)
	if !ok {
		result.AdjustmentReason = ReasonNoMarketData
		result.Message = fmt.Sprintf("no market data for category %s", category)
		return result
	}

	switch {
	case price < data.PriceRangeLow:
		result.Validated = true
		result.AdjustedPrice = data.PriceRangeLow * belowBandLift
		result.AdjustmentReason = ReasonBelowMarketMinimum
		result.Message = fmt.Sprintf("raised toward the %s market range %.0f-%.0f", category, data.PriceRangeLow, data.PriceRangeHigh)
	case price > data.PriceRangeHigh*aboveBandTolerance:
		result.Validated = true
		result.AdjustedPrice = data.PriceRangeHigh
		result.AdjustmentReason = ReasonAboveMarketMaximum
		result.Message = fmt.Sprintf("capped at the %s market maximum %.0f", category, data.PriceRangeHigh)
	default:
		result.Validated = true
		result.AdjustmentReason = ReasonWithinMarketRange
		result.Message = fmt.Sprintf("within the %s market range %.0f-%.0f", category, data.PriceRangeLow, data.PriceRangeHigh)
	}
	return result
}
