package models

import "time"

// Owner represents a pet-owner profile linked to an identity-provider user
type Owner struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex"` // Firebase UID of the identity-provider account
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerCompact is the trimmed owner shape embedded in feed entries
type OwnerCompact struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// ToCompact converts an Owner to its compact representation
func (o *Owner) ToCompact() OwnerCompact {
	return OwnerCompact{
		ID:          o.ID,
		DisplayName: o.DisplayName,
		AvatarURL:   o.AvatarURL,
	}
}

// UpdateOwnerRequest defines the request body for refreshing profile fields
type UpdateOwnerRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=1,max=80"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}
