package domain

import "time"

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User owns thoughts, notes, moments and calendar connections
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Provider     string    `json:"provider"`
	Timezone     string    `json:"timezone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) CanUsePassword() bool {
	return u.Provider == ProviderEmail && u.PasswordHash != ""
}
