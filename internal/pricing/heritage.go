package pricing

import (
	"math"
	"strings"
)

// Keyword classes for heritage scoring. Matching is case-insensitive
// substring search over the narrative text and story title; the region
// class matches against the narrative region field only.
var (
	religiousKeywords = []string{
		"religious", "spiritual", "temple", "worship", "deity",
		"ganesha", "krishna", "durga", "diwali", "holi", "festival",
		"lotus", "peacock",
	}
	rareTechniques = []string{
		"kutch pottery", "manjusha art", "kalamkari", "warli", "madhubani",
	}
	heritageRegions = []string{"rajasthan", "kutch", "gujarat"}
)

// HeritageScore rates cultural and heritage significance in [0,10]:
// religious or festival references +3, rare or endangered techniques +4,
// named high-heritage regions +2, generational/traditional language +1.
func HeritageScore(attrs NarrativeAttributes) float64 {
	text := strings.ToLower(attrs.NarrativeText + " " + attrs.StoryTitle)
	region := strings.ToLower(attrs.Region)

	score := 0.0
	if containsAny(text, religiousKeywords) {
		score += 3
	}
	if containsAny(text, rareTechniques) {
		score += 4
	}
	if containsAny(region, heritageRegions) {
		score += 2
	}
	if strings.Contains(text, "generational") || strings.Contains(text, "traditional") {
		score += 1
	}
	return math.Min(10, score)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
