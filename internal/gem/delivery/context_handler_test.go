package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	"thoughtfolio-backend/internal/gem/repository"
	"thoughtfolio-backend/internal/gem/usecase"
	"thoughtfolio-backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContextRouter(t *testing.T) (*gin.Engine, usecase.ContextUsecase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenInMemory(&gemdomain.Gem{}, &gemdomain.Context{})
	require.NoError(t, err)
	contexts := usecase.NewContextUsecase(repository.NewContextRepository(db), repository.NewGemRepository(db))
	h := NewContextHandler(contexts)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	})
	r.GET("/api/contexts", h.ListContexts)
	r.POST("/api/contexts", h.CreateContext)
	r.GET("/api/contexts/:id", h.GetContext)
	r.PUT("/api/contexts/:id", h.UpdateContext)
	r.DELETE("/api/contexts/:id", h.DeleteContext)
	return r, contexts
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContextEndpoints(t *testing.T) {
	r, contexts := setupContextRouter(t)
	focus, err := contexts.GetContextBySlug("user-1", "focus")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/api/contexts/"+focus.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "focus", got["slug"])
	assert.EqualValues(t, 0, got["active_count"])

	w = do(r, http.MethodPut, "/api/contexts/"+focus.ID, `{"thought_limit": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/contexts/"+focus.ID, `{"thought_limit": 101}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/contexts/"+focus.ID, `{"thought_limit": "lots"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/contexts/"+focus.ID, `{"thought_limit": 10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"thought_limit":10`)

	w = do(r, http.MethodDelete, "/api/contexts/"+focus.ID, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Default contexts cannot be deleted")

	w = do(r, http.MethodGet, "/api/contexts/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/contexts", `{"name":"Writing"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created gemdomain.Context
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodDelete, "/api/contexts/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
