package repositories

import (
	"context"

	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.PostComment) error
	GetCommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	GetRecentComments(ctx context.Context, postIDs []uint, limit int) ([]models.PostComment, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment appends a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentCounts returns comment totals grouped by post for a batch of posts
func (r *PostgresCommentRepository) GetCommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.PostComment{}).
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

// GetRecentComments retrieves the newest comments across a batch of posts,
// newest-first. Grouping per post and display reordering happen in the
// feed assembler.
func (r *PostgresCommentRepository) GetRecentComments(ctx context.Context, postIDs []uint, limit int) ([]models.PostComment, error) {
	var comments []models.PostComment
	if len(postIDs) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
