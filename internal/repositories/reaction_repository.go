package repositories

import (
	"context"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	UpsertReaction(ctx context.Context, reaction *models.PostReaction) error
	DeleteReaction(ctx context.Context, postID, ownerID uint) error
	GetReactionCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	GetReactedPostIDs(ctx context.Context, ownerID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// UpsertReaction inserts a reaction keyed on (post_id, owner_id). A racing
// duplicate insert is a no-op rather than an error, so concurrent toggles
// from the same owner stay idempotent.
func (r *PostgresReactionRepository) UpsertReaction(ctx context.Context, reaction *models.PostReaction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "owner_id"}},
		DoNothing: true,
	}).Create(reaction).Error
}

// DeleteReaction removes an owner's reaction from a post. Deleting a row
// that a concurrent toggle already removed is treated as success.
func (r *PostgresReactionRepository) DeleteReaction(ctx context.Context, postID, ownerID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND owner_id = ?", postID, ownerID).
		Delete(&models.PostReaction{}).Error
}

// GetReactionCounts returns reaction totals grouped by post for a batch of posts
func (r *PostgresReactionRepository) GetReactionCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.PostReaction{}).
		Select("post_id, count(*) as total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// GetReactedPostIDs returns which of the given posts the owner has reacted to
func (r *PostgresReactionRepository) GetReactedPostIDs(ctx context.Context, ownerID uint, postIDs []uint) (map[uint]bool, error) {
	reacted := make(map[uint]bool)
	if len(postIDs) == 0 {
		return reacted, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.PostReaction{}).
		Where("owner_id = ? AND post_id IN ?", ownerID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reacted[id] = true
	}
	return reacted, nil
}
