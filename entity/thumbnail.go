package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Thumbnail is one generated image asset. Rows are insert-only: the storage
// object is written before the row, and the row is never mutated afterwards.
type Thumbnail struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerID          uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title            string         `json:"title" gorm:"type:varchar(80);not null"`
	Prompt           string         `json:"prompt" gorm:"type:text;not null"`
	StorageBucket    string         `json:"storage_bucket" gorm:"type:varchar(255);not null"`
	StoragePath      string         `json:"storage_path" gorm:"type:varchar(1024);not null;uniqueIndex"`
	MimeType         string         `json:"mime_type" gorm:"type:varchar(64);not null"`
	SizeBytes        int64          `json:"size_bytes" gorm:"not null"`
	GenerationParams datatypes.JSON `json:"generation_params,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
}

func (Thumbnail) TableName() string {
	return "thumbnails"
}
