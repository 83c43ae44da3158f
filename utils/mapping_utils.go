package utils

import (
	"strings"
)

// MapAgeGroup maps age group labels to their canonical value
// Input is normalized to lowercase before mapping
// Returns "" when the label is unknown
func MapAgeGroup(ageGroup string) string {
	ageLower := strings.ToLower(strings.TrimSpace(ageGroup))

	ageMap := map[string]string{
		"adult":    "adult",
		"adults":   "adult",
		"grown":    "adult",
		"kid":      "kid",
		"kids":     "kid",
		"child":    "kid",
		"children": "kid",
	}

	if value, exists := ageMap[ageLower]; exists {
		return value
	}
	return ""
}

// MapGender maps avatar gender labels to their canonical value
// Input is normalized to lowercase before mapping
// Returns "" when the label is unknown
func MapGender(gender string) string {
	genderLower := strings.ToLower(strings.TrimSpace(gender))

	genderMap := map[string]string{
		"male":       "male",
		"man":        "male",
		"m":          "male",
		"female":     "female",
		"woman":      "female",
		"f":          "female",
		"other":      "other",
		"nonbinary":  "other",
		"non-binary": "other",
	}

	if value, exists := genderMap[genderLower]; exists {
		return value
	}
	return ""
}

// MapGenderTag maps the gender tag of a product feed to "male", "female" or "unisex"
// Input is normalized to lowercase before mapping
// Returns "" when the product carries no recognizable tag
func MapGenderTag(tag string) string {
	tagLower := strings.ToLower(strings.TrimSpace(tag))

	tagMap := map[string]string{
		"men":     "male",
		"mens":    "male",
		"men's":   "male",
		"male":    "male",
		"man":     "male",
		"boys":    "male",
		"women":   "female",
		"womens":  "female",
		"women's": "female",
		"female":  "female",
		"woman":   "female",
		"girls":   "female",
		"unisex":  "unisex",
		"all":     "unisex",
	}

	if value, exists := tagMap[tagLower]; exists {
		return value
	}
	return ""
}

// MapOptionValue normalizes a free-form avatar option (style names, colors)
// Trims whitespace and lowercases style names; hex colors keep their case-insensitive form
// Returns fallback when the value is empty
func MapOptionValue(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return strings.ToLower(trimmed)
}
