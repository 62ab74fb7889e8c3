package usecase

import (
	authdomain "thoughtfolio-backend/internal/auth/domain"
	authdto "thoughtfolio-backend/internal/auth/dto"
)

// AuthUsecase defines account, session and device operations
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	GoogleSignIn(idToken string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(token string) (*authdomain.User, error)
	GetUserByID(id string) (*authdomain.User, error)

	RegisterDevice(userID string, req *authdto.RegisterDeviceRequest) error
	UnregisterDevice(userID, token string) error
}
