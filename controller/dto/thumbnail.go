package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateThumbnailRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	ImageSize   string `json:"imageSize"`
}

type ThumbnailSummary struct {
	ID            uuid.UUID `json:"id"`
	StorageBucket string    `json:"storage_bucket"`
	StoragePath   string    `json:"storage_path"`
	CreatedAt     time.Time `json:"created_at"`
}

type GenerateThumbnailResponse struct {
	Thumbnail ThumbnailSummary `json:"thumbnail"`
	ImageURL  string           `json:"imageUrl"`
	Model     string           `json:"model"`
	Text      *string          `json:"text"`
}

type ThumbnailItem struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Prompt        string    `json:"prompt"`
	StorageBucket string    `json:"storage_bucket"`
	StoragePath   string    `json:"storage_path"`
	MimeType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	CreatedAt     time.Time `json:"created_at"`
	ImageURL      string    `json:"imageUrl,omitempty"`
}

type ListThumbnailsResponse struct {
	Thumbnails []ThumbnailItem `json:"thumbnails"`
}
