package pricing

import "strings"

// categoryRules map product keywords to market categories. Order matters:
// the first matching rule wins, and the final pottery rule is the documented
// catch-all for unclassifiable products.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"pottery", []string{"pot", "pottery", "clay", "ceramic", "terracotta"}},
	{"embroidery", []string{"embroidery", "embroidered", "stitch", "needlework", "zardozi"}},
	{"jewelry", []string{"jewelry", "jewellery", "necklace", "earring", "bangle", "ring", "pendant"}},
	{"textile", []string{"textile", "fabric", "cloth", "saree", "sari", "shawl", "scarf", "dupatta", "weave", "weaving"}},
	{"woodwork", []string{"wood", "carved", "carving", "furniture"}},
	{"metalwork", []string{"metal", "brass", "copper", "bronze", "iron", "silver", "gold", "filigree"}},
	{"painting", []string{"painting", "painted", "canvas", "artwork", "mural", "warli", "madhubani", "pattachitra"}},
	{"leather", []string{"leather", "hide", "skin", "suede"}},
}

// DetectCategory classifies a product into one of the tracked market
// categories from its description and cultural elements, defaulting to
// pottery when nothing matches.
func DetectCategory(description string, attrs NarrativeAttributes) string {
	text := strings.ToLower(description + " " + strings.Join(attrs.CulturalElements, " "))
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return "pottery"
}
