package models

// Media types attachable to a post
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// PostMedia represents a media attachment bound to exactly one post.
// Rows are created during post creation and removed when the post is deleted.
type PostMedia struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	PostID    uint   `json:"post_id" gorm:"index"`
	MediaURL  string `json:"media_url"` // URL returned by the object-store collaborator
	MediaType string `json:"media_type" gorm:"size:10"`
}
