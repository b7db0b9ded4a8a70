package marketintel

// Baseline bands for Indian craft categories, used until the first
// successful refresh and as the anchor for the band-drift caps.
var defaultCategories = map[string]CategoryMarketData{
	"pottery":    {PriceRangeLow: 100, PriceRangeHigh: 400, AverageMarkup: 200, Demand: DemandMedium, TrendScore: 50, TrendDirection: TrendStable},
	"embroidery": {PriceRangeLow: 200, PriceRangeHigh: 600, AverageMarkup: 350, Demand: DemandHigh, TrendScore: 50, TrendDirection: TrendStable},
	"jewelry":    {PriceRangeLow: 300, PriceRangeHigh: 1000, AverageMarkup: 500, Demand: DemandVeryHigh, TrendScore: 50, TrendDirection: TrendStable},
	"textile":    {PriceRangeLow: 150, PriceRangeHigh: 500, AverageMarkup: 300, Demand: DemandHigh, TrendScore: 50, TrendDirection: TrendStable},
	"woodwork":   {PriceRangeLow: 150, PriceRangeHigh: 450, AverageMarkup: 275, Demand: DemandMedium, TrendScore: 50, TrendDirection: TrendStable},
	"metalwork":  {PriceRangeLow: 250, PriceRangeHigh: 700, AverageMarkup: 425, Demand: DemandMedium, TrendScore: 50, TrendDirection: TrendStable},
	"painting":   {PriceRangeLow: 250, PriceRangeHigh: 800, AverageMarkup: 475, Demand: DemandHigh, TrendScore: 50, TrendDirection: TrendStable},
	"leather":    {PriceRangeLow: 150, PriceRangeHigh: 450, AverageMarkup: 275, Demand: DemandMedium, TrendScore: 50, TrendDirection: TrendStable},
}

// Provider keywords per tracked category. Only the first keyword is queried
// during refresh to keep within provider rate limits.
var craftKeywords = map[string][]string{
	"pottery":    {"indian pottery", "handmade pottery", "ceramic pottery india"},
	"embroidery": {"indian embroidery", "hand embroidery", "chikankari"},
	"jewelry":    {"handmade jewelry india", "silver jewelry", "oxidized jewelry"},
	"textile":    {"handloom textile", "indian saree", "handwoven fabric"},
	"woodwork":   {"wooden handicraft", "wood carving india", "handmade furniture"},
	"metalwork":  {"brass handicraft", "copper utensils", "metal craft india"},
	"painting":   {"madhubani painting", "warli art", "indian folk art"},
	"leather":    {"leather handicraft", "handmade leather bag", "leather goods india"},
}

var regionalKeywords = map[string][]string{
	"rajasthan":      {"rajasthan handicraft", "jaipur craft", "blue pottery"},
	"gujarat":        {"gujarat handicraft", "kutch embroidery", "bandhani"},
	"kerala":         {"kerala handicraft", "kathakali mask", "coir products"},
	"west bengal":    {"bengal handicraft", "kolkata craft", "terracotta bengal"},
	"madhya pradesh": {"gond art", "chanderi silk", "mp handicraft"},
	"uttar pradesh":  {"chikankari lucknow", "brassware", "up handicraft"},
	"karnataka":      {"mysore silk", "sandalwood craft", "karnataka handicraft"},
	"tamil nadu":     {"tanjore painting", "kanchipuram silk", "tamil handicraft"},
}

var seasonalKeywords = []string{
	"diwali gifts",
	"wedding gifts india",
	"holi colors",
	"raksha bandhan gifts",
	"christmas decorations india",
}

// maxRegionsPerRefresh bounds the regional phase to respect provider rate
// limits; regions are rotated alphabetically rather than all fetched.
const maxRegionsPerRefresh = 3

// DefaultSnapshot returns the built-in seed aggregate. LastUpdated is zero,
// so a freshly defaulted cache reports stale until the first refresh.
func DefaultSnapshot() Snapshot {
	snap := Snapshot{
		Categories:     make(map[string]CategoryMarketData, len(defaultCategories)),
		RegionalScores: map[string]int{},
		SeasonalTrends: map[string]SeasonalTrend{},
		TrendingCrafts: []TrendingCraft{},
	}
	for name, data := range defaultCategories {
		snap.Categories[name] = data
	}
	return snap
}
