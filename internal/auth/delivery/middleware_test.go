package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "thoughtfolio-backend/internal/auth/domain"
	authdto "thoughtfolio-backend/internal/auth/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct{}

func (stubAuth) Login(*authdto.LoginRequest) (*authdto.TokenResponse, error)       { return nil, nil }
func (stubAuth) Register(*authdto.RegisterRequest) (*authdto.TokenResponse, error) { return nil, nil }
func (stubAuth) GoogleSignIn(string) (*authdto.TokenResponse, error)               { return nil, nil }
func (stubAuth) RefreshToken(string) (*authdto.TokenResponse, error)               { return nil, nil }
func (stubAuth) Logout(string) error                                               { return nil }
func (stubAuth) GetUserByID(string) (*authdomain.User, error)                      { return nil, nil }
func (stubAuth) RegisterDevice(string, *authdto.RegisterDeviceRequest) error       { return nil }
func (stubAuth) UnregisterDevice(string, string) error                             { return nil }

func (stubAuth) ValidateToken(token string) (*authdomain.User, error) {
	if token == "valid" {
		return &authdomain.User{ID: "user-1"}, nil
	}
	return nil, authdomain.ErrNotAuthenticated
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(stubAuth{}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer valid", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())
			}
		})
	}
}
