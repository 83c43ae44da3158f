package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Preview sizes
const (
	PreviewSizeThumb  = "thumb"
	PreviewSizeMedium = "medium"
	PreviewSizeFull   = "full"
)

const (
	// Size settings (max dimension)
	maxSizeThumb  = 150
	maxSizeMedium = 400
)

// ImageCache stores optimized previews on disk keyed by content hash and size
type ImageCache struct {
	dir string
}

// NewImageCache creates a new ImageCache rooted at dir
func NewImageCache(dir string) *ImageCache {
	return &ImageCache{dir: dir}
}

// EnsureDir ensures the cache directory exists, creates it if it doesn't
func (c *ImageCache) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// Path returns the cache file path for the given content and size
func (c *ImageCache) Path(content []byte, size string) string {
	sum := sha256.Sum256(content)
	filename := fmt.Sprintf("preview_%s_%s.png", hex.EncodeToString(sum[:12]), size)
	return filepath.Join(c.dir, filename)
}

// Read reads an image from the cache; ok is false on a miss
func (c *ImageCache) Read(cachePath string) ([]byte, bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save saves an image to the cache
func (c *ImageCache) Save(cachePath string, imageData []byte) error {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Printf("✓ Preview cached: %s", cachePath)
	return nil
}

// OptimizeImage fits a PNG screenshot into the requested preview size
// imageData: raw image bytes (PNG, JPEG, etc.)
// size: "thumb", "medium" or "full"
// Returns PNG bytes; transparency is kept for sticker overlays
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim int
	switch size {
	case PreviewSizeThumb:
		maxDim = maxSizeThumb
	case PreviewSizeMedium:
		maxDim = maxSizeMedium
	case PreviewSizeFull:
		return imageData, nil
	default:
		maxDim = maxSizeMedium
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		log.Printf("🔄 Resizing preview: %dx%d -> fit %d", bounds.Dx(), bounds.Dy(), maxDim)
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	log.Printf("✓ Preview optimized: size=%s, output_size=%d bytes", size, buf.Len())
	return buf.Bytes(), nil
}
