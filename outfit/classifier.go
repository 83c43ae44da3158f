package outfit

import (
	"strings"

	"outfit-studio/models"
	"outfit-studio/utils"
)

// RegionRule maps a keyword group to a body region
type RegionRule struct {
	Keywords []string
	Region   models.BodyRegion
}

// regionRules is evaluated top to bottom; the first group with a matching keyword wins.
// The order is the contract: "Denim Skirt Jacket" is Outerwear, not Bottom.
var regionRules = []RegionRule{
	{Keywords: []string{"jacket", "coat", "sweater"}, Region: models.RegionOuterwear},
	{Keywords: []string{"pant", "jean", "short", "skirt", "trouser"}, Region: models.RegionBottom},
	{Keywords: []string{"dress"}, Region: models.RegionDress},
	{Keywords: []string{"shoe", "sneaker", "boot"}, Region: models.RegionShoes},
	{Keywords: []string{"bag", "hat", "cap", "watch", "accessory", "purse"}, Region: models.RegionAccessory},
}

// glyphRule maps a keyword group to a pictogram
type glyphRule struct {
	Keywords []string
	Glyph    string
}

// glyphRules is ordered independently from regionRules; it only drives the sticker icon.
var glyphRules = []glyphRule{
	{Keywords: []string{"dress", "gown"}, Glyph: "👗"},
	{Keywords: []string{"coat", "jacket", "parka"}, Glyph: "🧥"},
	{Keywords: []string{"sweater", "hoodie", "cardigan"}, Glyph: "🧶"},
	{Keywords: []string{"short"}, Glyph: "🩳"},
	{Keywords: []string{"jean", "pant", "trouser", "skirt"}, Glyph: "👖"},
	{Keywords: []string{"boot"}, Glyph: "👢"},
	{Keywords: []string{"heel", "sandal"}, Glyph: "👠"},
	{Keywords: []string{"shoe", "sneaker"}, Glyph: "👟"},
	{Keywords: []string{"cap", "hat"}, Glyph: "🧢"},
	{Keywords: []string{"bag", "purse"}, Glyph: "👜"},
	{Keywords: []string{"watch"}, Glyph: "⌚"},
	{Keywords: []string{"glasses", "sunglass"}, Glyph: "🕶️"},
}

const (
	defaultTopGlyph       = "👕"
	defaultFemaleTopGlyph = "👚"
	defaultAccessoryGlyph = "💍"
)

// Classification is the result of classifying a catalog title
type Classification struct {
	Region models.BodyRegion `json:"region"`
	Glyph  string            `json:"glyph"`
}

// RegionRules returns a copy of the region precedence table in evaluation order
func RegionRules() []RegionRule {
	rules := make([]RegionRule, 0, len(regionRules))
	for _, rule := range regionRules {
		keywords := make([]string, len(rule.Keywords))
		copy(keywords, rule.Keywords)
		rules = append(rules, RegionRule{Keywords: keywords, Region: rule.Region})
	}
	return rules
}

// Classify maps a product title to a body region and glyph.
// It never fails: titles without a known keyword are tops.
func Classify(title string) Classification {
	return ClassifyWithGender(title, "")
}

// ClassifyWithGender is Classify with the product's optional gender tag.
// The tag only changes the glyph, never the region.
func ClassifyWithGender(title string, genderTag string) Classification {
	titleLower := strings.ToLower(title)

	region := models.RegionTop
	for _, rule := range regionRules {
		if containsAny(titleLower, rule.Keywords) {
			region = rule.Region
			break
		}
	}

	return Classification{
		Region: region,
		Glyph:  glyphFor(titleLower, region, utils.MapGenderTag(genderTag)),
	}
}

func glyphFor(titleLower string, region models.BodyRegion, gender string) string {
	for _, rule := range glyphRules {
		if containsAny(titleLower, rule.Keywords) {
			return rule.Glyph
		}
	}

	switch region {
	case models.RegionAccessory:
		return defaultAccessoryGlyph
	case models.RegionTop:
		if gender == models.GenderFemale {
			return defaultFemaleTopGlyph
		}
	}
	return defaultTopGlyph
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
