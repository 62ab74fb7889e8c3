package repository

import (
	"testing"
	"time"

	authdomain "thoughtfolio-backend/internal/auth/domain"
	"thoughtfolio-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) UserRepository {
	t.Helper()
	db, err := database.OpenInMemory(&authdomain.User{}, &authdomain.RefreshToken{})
	require.NoError(t, err)
	return NewUserRepository(db)
}

func TestUserRepository_EmailLookupIgnoresCase(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Create(&authdomain.User{Email: " Ada@Example.com", Name: "Ada", Provider: authdomain.ProviderEmail}))

	found, err := repo.FindByEmail("ADA@example.COM")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ada@example.com", found.Email)

	missing, err := repo.FindByEmail("bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_SaveRefreshTokenPrunesExpired(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().UTC()

	require.NoError(t, repo.SaveRefreshToken(&authdomain.RefreshToken{Token: "old", UserID: "u1", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.SaveRefreshToken(&authdomain.RefreshToken{Token: "other-device", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.SaveRefreshToken(&authdomain.RefreshToken{Token: "new", UserID: "u1", ExpiresAt: now.Add(2 * time.Hour)}))

	old, err := repo.FindRefreshToken("old")
	require.NoError(t, err)
	assert.Nil(t, old)

	kept, err := repo.FindRefreshToken("other-device")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.False(t, kept.Expired(now))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}
