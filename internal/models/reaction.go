package models

import "time"

// ReactionKindLike is the only reaction kind currently exercised
const ReactionKindLike = "like"

// PostReaction represents an owner's reaction to a post.
// At most one row exists per (post_id, owner_id); changing kind is
// remove + re-add, never an in-place update.
type PostReaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_owner_reaction"`
	OwnerID   uint      `json:"owner_id" gorm:"index;uniqueIndex:idx_post_owner_reaction"`
	Kind      string    `json:"kind" gorm:"size:20;default:like"`
	CreatedAt time.Time `json:"created_at"`
}
