package models

import "time"

// MaxCommentLength bounds comment text; longer input is rejected before
// any store call is made.
const MaxCommentLength = 500

// PostComment represents a comment on a post. Comments are append-only in
// this subsystem; there is no edit operation.
type PostComment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	OwnerID   uint      `json:"owner_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateCommentRequest defines the request body for adding a comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
