package repositories

import (
	"context"
	"fmt"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-graph operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.OwnerFollow) error
	DeleteFollow(ctx context.Context, followerOwnerID, followingOwnerID uint) error
	IsFollowing(ctx context.Context, followerOwnerID, followingOwnerID uint) (bool, error)
	GetFollowingIDs(ctx context.Context, ownerID uint) ([]uint, error)
	GetFollowersCount(ctx context.Context, ownerID uint) (int64, error)
	GetFollowingCount(ctx context.Context, ownerID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.OwnerFollow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerOwnerID, followingOwnerID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_owner_id = ? AND following_owner_id = ?", followerOwnerID, followingOwnerID).
		Delete(&models.OwnerFollow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("follow relationship not found")
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerOwnerID, followingOwnerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OwnerFollow{}).
		Where("follower_owner_id = ? AND following_owner_id = ?", followerOwnerID, followingOwnerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.OwnerFollow{}).
		Where("follower_owner_id = ?", ownerID).
		Pluck("following_owner_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OwnerFollow{}).
		Where("following_owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OwnerFollow{}).
		Where("follower_owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
