package utils

import (
	"fmt"
	"regexp"
	"strings"

	"outfit-studio/models"
)

var stickerExtRegex = regexp.MustCompile(`\.(png|jpg|jpeg|svg)$`)

// ParseStickerFileName parses a sticker artwork filename following the pattern:
// REGION.PNG, optionally with a variant suffix REGION-VARIANT.PNG
// Example: outerwear.png, Shoes-01.PNG
func ParseStickerFileName(filename string) (models.BodyRegion, error) {
	// Remove extension (case-insensitive)
	name := strings.ToLower(strings.TrimSpace(filename))
	if !stickerExtRegex.MatchString(name) {
		return "", fmt.Errorf("invalid sticker filename: unsupported extension in %s", filename)
	}
	name = stickerExtRegex.ReplaceAllString(name, "")

	// Variant suffix is ignored
	if idx := strings.Index(name, "-"); idx >= 0 {
		name = name[:idx]
	}

	for _, region := range models.AllRegions {
		if strings.ToLower(string(region)) == name {
			return region, nil
		}
	}

	return "", fmt.Errorf("invalid sticker filename: unknown region %q", name)
}
