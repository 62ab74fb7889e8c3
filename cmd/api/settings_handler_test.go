package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsRouter(s *RuntimeSettings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSettingsHandler(s)
	r.GET("/api/settings/ollama", h.GetOllamaSettings)
	r.PUT("/api/settings/ollama", h.UpdateOllamaSettings)
	r.POST("/api/settings/ollama/test", h.TestOllamaConnection)
	return r
}

func TestSettings_UpdateIsVisibleToGetters(t *testing.T) {
	s := NewRuntimeSettings("http://localhost:11434/", "llama3")
	r := settingsRouter(s)
	assert.Equal(t, "http://localhost:11434", s.OllamaBaseURL())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/settings/ollama", strings.NewReader(`{"ollama_base_url":"http://gpu-box:11434"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "http://gpu-box:11434", s.OllamaBaseURL())
	assert.Equal(t, "llama3", s.OllamaModel())
	assert.JSONEq(t, `{"ollama_base_url":"http://gpu-box:11434","ollama_model":"llama3"}`, w.Body.String())
}

func TestSettings_RejectsBadURL(t *testing.T) {
	r := settingsRouter(NewRuntimeSettings("http://localhost:11434", "llama3"))

	for _, body := range []string{`{}`, `{"ollama_base_url":"ftp://x"}`, `{"ollama_base_url":"not a url"}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/settings/ollama", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestSettings_ProbeUsesCurrentEndpoint(t *testing.T) {
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer ollama.Close()

	r := settingsRouter(NewRuntimeSettings(ollama.URL, "llama3"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/settings/ollama/test", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"connected":true`)
}

func TestSettings_ProbeReportsDownstreamFailure(t *testing.T) {
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ollama.Close()

	r := settingsRouter(NewRuntimeSettings(ollama.URL, "llama3"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/settings/ollama/test", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status_code":502`)
}
