package repositories

import (
	"context"
	"fmt"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// OwnerRepository defines the interface for owner profile operations
type OwnerRepository interface {
	CreateOwner(ctx context.Context, owner *models.Owner) error
	GetOwnerByID(ctx context.Context, id uint) (*models.Owner, error)
	GetOwnerByUserID(ctx context.Context, userID string) (*models.Owner, error)
	GetOwnersByIDs(ctx context.Context, ids []uint) ([]models.Owner, error)
	UpdateOwner(ctx context.Context, owner *models.Owner) error
}

// PostgresOwnerRepository implements OwnerRepository for PostgreSQL
type PostgresOwnerRepository struct {
	db *gorm.DB
}

// NewPostgresOwnerRepository creates a new PostgresOwnerRepository
func NewPostgresOwnerRepository(db *gorm.DB) *PostgresOwnerRepository {
	return &PostgresOwnerRepository{db: db}
}

// CreateOwner creates a new owner profile
func (r *PostgresOwnerRepository) CreateOwner(ctx context.Context, owner *models.Owner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}

// GetOwnerByID retrieves an owner by ID
func (r *PostgresOwnerRepository) GetOwnerByID(ctx context.Context, id uint) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.WithContext(ctx).First(&owner, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("owner not found")
		}
		return nil, err
	}
	return &owner, nil
}

// GetOwnerByUserID retrieves an owner by identity-provider user id
func (r *PostgresOwnerRepository) GetOwnerByUserID(ctx context.Context, userID string) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&owner).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("owner not found")
		}
		return nil, err
	}
	return &owner, nil
}

// GetOwnersByIDs retrieves a batch of owners in a single query
func (r *PostgresOwnerRepository) GetOwnersByIDs(ctx context.Context, ids []uint) ([]models.Owner, error) {
	var owners []models.Owner
	if len(ids) == 0 {
		return owners, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

// UpdateOwner persists display name / avatar refreshes
func (r *PostgresOwnerRepository) UpdateOwner(ctx context.Context, owner *models.Owner) error {
	return r.db.WithContext(ctx).Model(&models.Owner{}).
		Where("id = ?", owner.ID).
		Updates(map[string]interface{}{
			"display_name": owner.DisplayName,
			"avatar_url":   owner.AvatarURL,
		}).Error
}
