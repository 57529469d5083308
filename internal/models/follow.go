package models

import "time"

// OwnerFollow represents a directed follow edge between two owners,
// unique per ordered pair
type OwnerFollow struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FollowerOwnerID  uint      `json:"follower_owner_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingOwnerID uint      `json:"following_owner_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt        time.Time `json:"created_at"`
}
