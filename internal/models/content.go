package models

// Content is one normalized search result. Rows are never updated and the
// same link may be stored many times; duplicates are collapsed on read.
type Content struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Title           string `json:"title" gorm:"index"`
	Snippet         string `json:"snippet"`
	Link            string `json:"link" gorm:"index"`
	Source          string `json:"source" gorm:"size:30;index"`
	LongDescription string `json:"long_description"`
	Image           string `json:"image"`
	Active          bool   `json:"active" gorm:"default:true"`
}

// ContentCandidate is a search result that has not been persisted yet
type ContentCandidate struct {
	Title           string `json:"title"`
	Snippet         string `json:"snippet"`
	Link            string `json:"link"`
	LongDescription string `json:"long_description"`
	Image           string `json:"image"`
	Source          string `json:"source"`
}

func (c ContentCandidate) ToContent() Content {
	return Content{
		Title:           c.Title,
		Snippet:         c.Snippet,
		Link:            c.Link,
		Source:          c.Source,
		LongDescription: c.LongDescription,
		Image:           c.Image,
		Active:          true,
	}
}
