package repository

import authdomain "thoughtfolio-backend/internal/auth/domain"

// UserRepository defines persistence for users and their refresh tokens
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}

// DeviceRepository stores push tokens used for moment reminders
type DeviceRepository interface {
	Register(userID, token, deviceInfo string) error
	ListByUser(userID string) ([]authdomain.Device, error)
	Unregister(userID, token string) error
	DeleteByToken(token string) error
}
