package models

// StickerAsset represents a sticker artwork file stored in Google Drive
// Example JSON:
//
//	{
//	  "driveFileId": "1AbCdEf",
//	  "fileName": "Shoes.png",
//	  "region": "Shoes",
//	  "imageUrl": "https://drive.google.com/uc?id=1AbCdEf"
//	}
type StickerAsset struct {
	DriveFileID string     `json:"driveFileId"`
	FileName    string     `json:"fileName"`
	Region      BodyRegion `json:"region"`
	ImageURL    string     `json:"imageUrl"`
}

// StickerSyncResponse represents the response of a sticker artwork sync
type StickerSyncResponse struct {
	Total   int            `json:"total"`
	Skipped int            `json:"skipped"`
	Assets  []StickerAsset `json:"assets"`
}
