package pricing

// Scorer weights and markup coefficients. The combined score weights sum to
// 1, so the combined score inherits the 0-10 scale of its inputs.
const (
	heritageWeight   = 0.3
	complexityWeight = 0.4
	marketWeight     = 0.3

	baseMarkupFloor  = 250.0
	complexityMarkup = 25.0
	heritageMarkup   = 20.0
	marketMarkup     = 15.0

	rangeLowFactor  = 0.9
	rangeHighFactor = 1.1
)

// PriceComputation is the raw weighted price before market validation.
type PriceComputation struct {
	CombinedScore   float64
	BaseMarkup      float64
	PriceMultiplier float64
	RawPrice        float64
	RangeLow        float64
	RangeHigh       float64
}

// ComputePrice derives the raw price from the three signal scores. The
// multiplier lands in [1.0, 1.5] because the combined score is bounded by 10.
func ComputePrice(heritage, complexity, market float64) PriceComputation {
	combined := heritage*heritageWeight + complexity*complexityWeight + market*marketWeight
	markup := baseMarkupFloor + complexity*complexityMarkup + heritage*heritageMarkup + market*marketMarkup
	multiplier := 1 + combined/20
	raw := markup * multiplier
	return PriceComputation{
		CombinedScore:   combined,
		BaseMarkup:      markup,
		PriceMultiplier: multiplier,
		RawPrice:        raw,
		RangeLow:        raw * rangeLowFactor,
		RangeHigh:       raw * rangeHighFactor,
	}
}

// SuccessProbability maps the combined score to an estimated sale likelihood
// in [50,95] percent.
func SuccessProbability(combined float64) float64 {
	p := 50 + combined*4.5
	if p > 95 {
		return 95
	}
	if p < 50 {
		return 50
	}
	return p
}
