package domain

import "time"

type SourceType string

const (
	SourceTypeBook    SourceType = "book"
	SourceTypeArticle SourceType = "article"
	SourceTypePodcast SourceType = "podcast"
	SourceTypeVideo   SourceType = "video"
	SourceTypeCourse  SourceType = "course"
	SourceTypeOther   SourceType = "other"
)

func (t SourceType) Valid() bool {
	switch t {
	case SourceTypeBook, SourceTypeArticle, SourceTypePodcast, SourceTypeVideo, SourceTypeCourse, SourceTypeOther:
		return true
	}
	return false
}

// Source is where thoughts came from (a book, an article...)
type Source struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"index;not null"`
	Name      string     `json:"name" gorm:"not null"`
	Author    string     `json:"author,omitempty"`
	Type      SourceType `json:"type" gorm:"default:other"`
	URL       string     `json:"url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
