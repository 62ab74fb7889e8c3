package domain

import "time"

const (
	DefaultThoughtLimit = 20
	MinThoughtLimit     = 1
	MaxThoughtLimit     = 100

	// OtherContextSlug receives thoughts from deleted contexts and unclassified captures
	OtherContextSlug = "other"
)

// Context is a bucket of thoughts with a cap on how many may be active
type Context struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex:idx_context_user_slug;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Slug         string    `json:"slug" gorm:"uniqueIndex:idx_context_user_slug;not null"`
	Color        string    `json:"color,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	ThoughtLimit int       `json:"thought_limit" gorm:"default:20"`
	IsDefault    bool      `json:"is_default" gorm:"default:false"`
	SortOrder    int       `json:"sort_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultContexts are seeded for every user on first access
var DefaultContexts = []Context{
	{Name: "Meetings", Slug: "meetings", Color: "#3B82F6", Icon: "users"},
	{Name: "Feedback", Slug: "feedback", Color: "#10B981", Icon: "message-square"},
	{Name: "Conflict", Slug: "conflict", Color: "#EF4444", Icon: "zap"},
	{Name: "Focus", Slug: "focus", Color: "#8B5CF6", Icon: "target"},
	{Name: "Health", Slug: "health", Color: "#F59E0B", Icon: "heart"},
	{Name: "Relationships", Slug: "relationships", Color: "#EC4899", Icon: "users-round"},
	{Name: "Parenting", Slug: "parenting", Color: "#14B8A6", Icon: "baby"},
	{Name: "Other", Slug: OtherContextSlug, Color: "#6B7280", Icon: "folder"},
}
