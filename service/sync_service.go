package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"outfit-studio/models"
)

// StickerSyncService keeps the per-region sticker artwork loaded from Google Drive
// Implements StickerSyncServiceInterface
type StickerSyncService struct {
	driveService DriveServiceInterface

	mu      sync.RWMutex
	artwork map[models.BodyRegion]string
}

// NewStickerSyncService creates a new StickerSyncService
func NewStickerSyncService(driveService DriveServiceInterface) *StickerSyncService {
	return &StickerSyncService{
		driveService: driveService,
		artwork:      make(map[models.BodyRegion]string),
	}
}

// Ensure StickerSyncService implements StickerSyncServiceInterface
var _ StickerSyncServiceInterface = (*StickerSyncService)(nil)

// Sync replaces the loaded artwork with the contents of the Drive folder.
// When several files name the same region the first by file name wins.
func (s *StickerSyncService) Sync(ctx context.Context, folderID string) (models.StickerSyncResponse, error) {
	log.Printf("🔄 Starting sticker synchronization for folder: %s", folderID)

	if err := ctx.Err(); err != nil {
		return models.StickerSyncResponse{}, err
	}

	assets, err := s.driveService.ListStickers(folderID)
	if err != nil {
		return models.StickerSyncResponse{}, fmt.Errorf("failed to list stickers from Drive: %w", err)
	}

	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].FileName < assets[j].FileName
	})

	artwork := make(map[models.BodyRegion]string, len(models.AllRegions))
	kept := make([]models.StickerAsset, 0, len(assets))
	skipped := 0
	for _, asset := range assets {
		if _, exists := artwork[asset.Region]; exists {
			log.Printf("⏭️  Skipping %s (region %s already has artwork)", asset.FileName, asset.Region)
			skipped++
			continue
		}
		artwork[asset.Region] = asset.ImageURL
		kept = append(kept, asset)
	}

	s.mu.Lock()
	s.artwork = artwork
	s.mu.Unlock()

	log.Printf("🎉 Sticker synchronization completed: %d regions, %d skipped, %d total", len(kept), skipped, len(assets))
	return models.StickerSyncResponse{
		Total:   len(assets),
		Skipped: skipped,
		Assets:  kept,
	}, nil
}

// ArtworkURL returns the synced artwork URL for the region
func (s *StickerSyncService) ArtworkURL(region models.BodyRegion) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.artwork[region]
	return url, ok
}
