package models

import "time"

// ResponseLink ties one prompt, one subject and one content row together.
// Rows produced by the same subject search share Subject.
type ResponseLink struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	PromptID           uint      `json:"prompt_id" gorm:"index;not null"`
	ContentID          uint      `json:"content_id" gorm:"index;not null"`
	Subject            string    `json:"subject" gorm:"index"`
	SubjectDescription string    `json:"subject_description"`
	CreatedAt          time.Time `json:"created_at"`
}
