package models

import "time"

// Patient represents a pet registered under an owner
type Patient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"index"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
