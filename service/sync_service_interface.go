package service

import (
	"context"

	"outfit-studio/models"
)

// StickerSyncServiceInterface defines the contract for sticker artwork synchronization
type StickerSyncServiceInterface interface {
	// Sync reloads the region artwork from the Drive folder.
	// skipped counts files that lost to an earlier file for the same region.
	Sync(ctx context.Context, folderID string) (models.StickerSyncResponse, error)
	ArtworkProvider
}
