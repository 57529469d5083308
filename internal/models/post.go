package models

import "time"

// Post visibility levels
const (
	VisibilityPublic     = "public"      // readable by everyone
	VisibilityOwnersOnly = "owners_only" // readable by followers of the author
	VisibilityPrivate    = "private"     // readable by the author only
)

// Post represents a pet-moments post authored by an owner
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OwnerID    uint      `json:"owner_id" gorm:"index"`
	PatientID  *uint     `json:"patient_id,omitempty" gorm:"index"` // optional link to a registered pet
	Content    string    `json:"content"`
	MediaCount int       `json:"media_count"` // denormalized, set at creation; uploads may still be in flight
	Visibility string    `json:"visibility" gorm:"size:20;default:public;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post.
// Content may be empty when media is attached; the handler enforces that
// at least one of the two is present.
type CreatePostRequest struct {
	Content    string   `json:"content,omitempty" validate:"omitempty,max=2000"`
	PatientID  *uint    `json:"patient_id,omitempty"`
	Visibility string   `json:"visibility" validate:"required,oneof=public owners_only private"`
	MediaURLs  []string `json:"media_urls,omitempty" validate:"omitempty,dive,url"`
	MediaTypes []string `json:"media_types,omitempty" validate:"omitempty,dive,oneof=image video"`
}

// UpdatePostRequest defines the request body for editing an existing post
type UpdatePostRequest struct {
	Content    string `json:"content,omitempty" validate:"omitempty,max=2000"`
	Visibility string `json:"visibility,omitempty" validate:"omitempty,oneof=public owners_only private"`
}
