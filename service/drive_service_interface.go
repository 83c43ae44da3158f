package service

import "outfit-studio/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListStickers(folderID string) ([]models.StickerAsset, error)
}
