package models

// SubjectResourceGroup is all content found for one subject of one prompt
type SubjectResourceGroup struct {
	Prompt      Prompt    `json:"prompt"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Contents    []Content `json:"contents"`
}

// UserSubjectResourceGroup is a SubjectResourceGroup with its author, used by
// the feed and profile previews
type UserSubjectResourceGroup struct {
	User        UserCompact `json:"user"`
	Prompt      Prompt      `json:"prompt"`
	Subject     string      `json:"subject"`
	Description string      `json:"description"`
	Contents    []Content   `json:"contents"`
}
