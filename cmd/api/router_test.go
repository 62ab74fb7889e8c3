package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "thoughtfolio-backend/internal/auth/domain"
	authdto "thoughtfolio-backend/internal/auth/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rejectAll struct{}

func (rejectAll) Login(*authdto.LoginRequest) (*authdto.TokenResponse, error)       { return nil, nil }
func (rejectAll) Register(*authdto.RegisterRequest) (*authdto.TokenResponse, error) { return nil, nil }
func (rejectAll) GoogleSignIn(string) (*authdto.TokenResponse, error)               { return nil, nil }
func (rejectAll) RefreshToken(string) (*authdto.TokenResponse, error)               { return nil, nil }
func (rejectAll) Logout(string) error                                               { return nil }
func (rejectAll) GetUserByID(string) (*authdomain.User, error)                      { return nil, nil }
func (rejectAll) RegisterDevice(string, *authdto.RegisterDeviceRequest) error       { return nil }
func (rejectAll) UnregisterDevice(string, string) error                             { return nil }
func (rejectAll) ValidateToken(string) (*authdomain.User, error) {
	return nil, authdomain.ErrNotAuthenticated
}

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(rejectAll{}, Handlers{}).Engine()
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := testEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	r := testEngine()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/gems"},
		{http.MethodGet, "/api/gems/daily"},
		{http.MethodPost, "/api/moments/match"},
		{http.MethodPost, "/api/capture/analyze"},
		{http.MethodGet, "/api/search"},
		{http.MethodDelete, "/api/calendar"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
		assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String(), route.path)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := testEngine()

	req := httptest.NewRequest(http.MethodOptions, "/api/gems", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
