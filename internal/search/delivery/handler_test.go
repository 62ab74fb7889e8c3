package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	searchdto "thoughtfolio-backend/internal/search/dto"
	"thoughtfolio-backend/internal/search/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	lastKind string
}

func (f *fakeSearch) Search(userID, query, kind string, limit int) (*searchdto.SearchResponse, error) {
	f.lastKind = kind
	return &searchdto.SearchResponse{Query: query, Results: []searchdto.Result{{Type: "gem", ID: "g1", Content: "x", Score: 1}}, Total: 1}, nil
}

func (f *fakeSearch) Semantic(ctx context.Context, userID, query string, limit int) (*searchdto.SearchResponse, error) {
	return nil, usecase.ErrSemanticUnavailable
}

func (f *fakeSearch) Suggestions(userID, query string, limit int) ([]string, error) {
	return []string{"Atomic Habits"}, nil
}

func setupRouter(uc usecase.SearchUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSearchHandler(uc)
	r.Use(func(c *gin.Context) { c.Set("userID", "u1"); c.Next() })
	r.GET("/api/search", h.Search)
	r.POST("/api/search/semantic", h.Semantic)
	r.GET("/api/search/suggestions", h.Suggestions)
	return r
}

func TestSearchHandler_Search(t *testing.T) {
	fake := &fakeSearch{}
	r := setupRouter(fake)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=habit&type=gem", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gem", fake.lastKind)

	var resp searchdto.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestSearchHandler_InvalidType(t *testing.T) {
	r := setupRouter(&fakeSearch{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=x&type=email", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_SemanticUnavailable(t *testing.T) {
	r := setupRouter(&fakeSearch{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search/semantic", strings.NewReader(`{"query":"focus"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/search/semantic", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchHandler_Suggestions(t *testing.T) {
	r := setupRouter(&fakeSearch{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search/suggestions?q=hab", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":["Atomic Habits"]}`, w.Body.String())
}
