package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"outfit-studio/models"
	"outfit-studio/utils"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ListStickers lists all sticker artwork files in a Google Drive folder
func (ds *DriveService) ListStickers(folderID string) ([]models.StickerAsset, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	return stickersFromFiles(allFiles), nil
}

var stickerMimeTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/svg+xml": true,
}

// stickersFromFiles keeps the image files whose names map to a body region
func stickersFromFiles(files []*drive.File) []models.StickerAsset {
	var stickers []models.StickerAsset
	for _, file := range files {
		if !stickerMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		region, err := utils.ParseStickerFileName(file.Name)
		if err != nil {
			log.Printf("⚠️  Skipping sticker file %s: %v", file.Name, err)
			continue
		}

		stickers = append(stickers, models.StickerAsset{
			DriveFileID: file.Id,
			FileName:    file.Name,
			Region:      region,
			ImageURL:    fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
		})
	}
	return stickers
}
