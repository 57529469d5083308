package repositories

import (
	"context"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// MediaRepository defines the interface for post media operations
type MediaRepository interface {
	CreateMedia(ctx context.Context, media []models.PostMedia) error
	GetMediaByPostIDs(ctx context.Context, postIDs []uint) ([]models.PostMedia, error)
	DeleteMediaByPostID(ctx context.Context, postID uint) error
}

// PostgresMediaRepository implements MediaRepository for PostgreSQL
type PostgresMediaRepository struct {
	db *gorm.DB
}

// NewPostgresMediaRepository creates a new PostgresMediaRepository
func NewPostgresMediaRepository(db *gorm.DB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

// CreateMedia inserts all media rows for a newly created post
func (r *PostgresMediaRepository) CreateMedia(ctx context.Context, media []models.PostMedia) error {
	if len(media) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&media).Error
}

// GetMediaByPostIDs retrieves all media rows for a batch of posts
func (r *PostgresMediaRepository) GetMediaByPostIDs(ctx context.Context, postIDs []uint) ([]models.PostMedia, error) {
	var media []models.PostMedia
	if len(postIDs) == 0 {
		return media, nil
	}
	if err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMediaByPostID removes all media rows attached to a post
func (r *PostgresMediaRepository) DeleteMediaByPostID(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostMedia{}).Error
}
