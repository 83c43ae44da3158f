package controller

import (
	"log"
	"net/http"

	"outfit-studio/service"
)

// StickerController handles HTTP requests for sticker artwork
type StickerController struct {
	syncService service.StickerSyncServiceInterface
	folderID    string
}

// NewStickerController creates a new StickerController
func NewStickerController(syncService service.StickerSyncServiceInterface, folderID string) *StickerController {
	return &StickerController{
		syncService: syncService,
		folderID:    folderID,
	}
}

// SyncStickers handles POST /admin/stickers/sync
// Reloads the per-region sticker artwork from the configured Google Drive folder
func (c *StickerController) SyncStickers(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SyncStickers: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response, err := c.syncService.Sync(r.Context(), c.folderID)
	if err != nil {
		log.Printf("❌ SyncStickers: Error syncing stickers: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to sync stickers", Retryable: true})
		return
	}

	writeJSON(w, http.StatusOK, response)
}
