package service

import "context"

// PreviewServiceInterface defines the contract for outfit PNG previews
type PreviewServiceInterface interface {
	// RenderPNG returns the preview of pageHTML for size "thumb", "medium" or "full"
	RenderPNG(ctx context.Context, pageHTML []byte, size string) ([]byte, error)
}
