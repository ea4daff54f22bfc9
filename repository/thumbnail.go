package repository

import (
	"github.com/google/uuid"
	"github.com/haneulab/thumbsmith-api/entity"
	"gorm.io/gorm"
)

type ThumbnailRepository struct {
	db *gorm.DB
}

func NewThumbnailRepository(db *gorm.DB) *ThumbnailRepository {
	return &ThumbnailRepository{db: db}
}

// Create inserts the row and fills the DB-assigned id and created_at back
// into the struct.
func (r *ThumbnailRepository) Create(thumbnail *entity.Thumbnail) error {
	return r.db.Create(thumbnail).Error
}

func (r *ThumbnailRepository) FindByID(id uuid.UUID) (*entity.Thumbnail, error) {
	var thumbnail entity.Thumbnail
	err := r.db.Where("id = ?", id).First(&thumbnail).Error
	if err != nil {
		return nil, err
	}
	return &thumbnail, nil
}

func (r *ThumbnailRepository) FindByOwnerID(ownerID uuid.UUID) ([]entity.Thumbnail, error) {
	var thumbnails []entity.Thumbnail
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&thumbnails).Error
	if err != nil {
		return nil, err
	}
	return thumbnails, nil
}
