package models

import "time"

// Prompt is a user submission. Title holds the raw text, Keywords the main
// subject the LLM derived from it.
type Prompt struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"index;not null"`
	Keywords  string    `json:"keywords"`
	IsPrivate bool      `json:"is_private" gorm:"default:false;index"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type CuriousRequest struct {
	Prompt    string `json:"prompt" validate:"required,min=3,max=500"`
	IsPrivate bool   `json:"is_private"`
}

type UpdateVisibilityRequest struct {
	IsPrivate *bool `json:"is_private" validate:"required"`
}
