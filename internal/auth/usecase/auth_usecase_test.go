package usecase

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authdomain "thoughtfolio-backend/internal/auth/domain"
	authdto "thoughtfolio-backend/internal/auth/dto"
	"thoughtfolio-backend/internal/auth/repository"
	"thoughtfolio-backend/pkg/config"
	"thoughtfolio-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUsecase(t *testing.T) *authUsecase {
	t.Helper()
	db, err := database.OpenInMemory(&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.Device{})
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	return NewAuthUsecase(repository.NewUserRepository(db), repository.NewDeviceRepository(db), cfg).(*authUsecase)
}

func TestRegisterLoginAndValidate(t *testing.T) {
	uc := newTestUsecase(t)

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "ada@example.com", Password: "secret123", Name: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err = uc.Register(&authdto.RegisterRequest{Email: "ada@example.com", Password: "secret123", Name: "Ada"})
	assert.ErrorIs(t, err, authdomain.ErrEmailTaken)

	_, err = uc.Login(&authdto.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	login, err := uc.Login(&authdto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = uc.ValidateToken("garbage")
	assert.ErrorIs(t, err, authdomain.ErrNotAuthenticated)
}

func TestRefreshTokenRotates(t *testing.T) {
	uc := newTestUsecase(t)
	resp, err := uc.Register(&authdto.RegisterRequest{Email: "bo@example.com", Password: "secret123", Name: "Bo"})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	_, err = uc.RefreshToken(resp.RefreshToken)
	assert.ErrorIs(t, err, authdomain.ErrRefreshTokenExpired)

	require.NoError(t, uc.Logout(refreshed.RefreshToken))
	_, err = uc.RefreshToken(refreshed.RefreshToken)
	assert.ErrorIs(t, err, authdomain.ErrRefreshTokenExpired)
}

func TestGoogleSignIn(t *testing.T) {
	uc := newTestUsecase(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "good":
			w.Write([]byte(`{"email":"cy@example.com","name":"Cy","email_verified":"true","sub":"1"}`))
		case "unverified":
			w.Write([]byte(`{"email":"cy@example.com","name":"Cy","email_verified":"false"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()
	uc.tokenInfoURL = srv.URL

	resp, err := uc.GoogleSignIn("good")
	require.NoError(t, err)
	assert.Equal(t, "google", resp.User.Provider)

	_, err = uc.GoogleSignIn("unverified")
	assert.ErrorIs(t, err, authdomain.ErrGoogleTokenNotVerify)

	_, err = uc.GoogleSignIn("bad")
	assert.ErrorIs(t, err, authdomain.ErrNotAuthenticated)

	// google accounts cannot log in with a password
	_, err = uc.Login(&authdto.LoginRequest{Email: "cy@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, authdomain.ErrUseGoogleSignIn)
}

func TestDevices(t *testing.T) {
	uc := newTestUsecase(t)
	require.NoError(t, uc.RegisterDevice("u1", &authdto.RegisterDeviceRequest{Token: "tok", DeviceInfo: "phone"}))
	// same token re-registered by another user moves over
	require.NoError(t, uc.RegisterDevice("u2", &authdto.RegisterDeviceRequest{Token: "tok", DeviceInfo: "phone"}))

	devices, err := uc.deviceRepo.ListByUser("u1")
	require.NoError(t, err)
	assert.Empty(t, devices)
	devices, err = uc.deviceRepo.ListByUser("u2")
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	require.NoError(t, uc.UnregisterDevice("u2", "tok"))
	devices, _ = uc.deviceRepo.ListByUser("u2")
	assert.Empty(t, devices)
}
