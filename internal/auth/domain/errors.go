package domain

import "errors"

var (
	ErrNotAuthenticated     = errors.New("Not authenticated")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUseGoogleSignIn      = errors.New("please use Google Sign-In for this account")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrGoogleTokenNotVerify = errors.New("google email is not verified")
)
