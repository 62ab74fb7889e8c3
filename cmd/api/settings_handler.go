package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const ollamaProbeTimeout = 5 * time.Second

// RuntimeSettings holds the Ollama endpoint the AI generator reads on every call
type RuntimeSettings struct {
	mu            sync.RWMutex
	ollamaBaseURL string
	ollamaModel   string
}

func NewRuntimeSettings(ollamaBaseURL, ollamaModel string) *RuntimeSettings {
	return &RuntimeSettings{
		ollamaBaseURL: strings.TrimRight(ollamaBaseURL, "/"),
		ollamaModel:   ollamaModel,
	}
}

func (s *RuntimeSettings) OllamaBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollamaBaseURL
}

func (s *RuntimeSettings) OllamaModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ollamaModel
}

func (s *RuntimeSettings) setOllama(baseURL, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ollamaBaseURL = strings.TrimRight(baseURL, "/")
	if model != "" {
		s.ollamaModel = model
	}
}

type UpdateOllamaSettingsRequest struct {
	OllamaBaseURL string `json:"ollama_base_url" binding:"required"`
	OllamaModel   string `json:"ollama_model,omitempty"`
}

type SettingsHandler struct {
	settings *RuntimeSettings
	client   *http.Client
}

func NewSettingsHandler(settings *RuntimeSettings) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		client:   &http.Client{Timeout: ollamaProbeTimeout},
	}
}

func (h *SettingsHandler) current() gin.H {
	return gin.H{
		"ollama_base_url": h.settings.OllamaBaseURL(),
		"ollama_model":    h.settings.OllamaModel(),
	}
}

// GET /api/settings/ollama
func (h *SettingsHandler) GetOllamaSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.current())
}

// PUT /api/settings/ollama
func (h *SettingsHandler) UpdateOllamaSettings(c *gin.Context) {
	var req UpdateOllamaSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ollama_base_url is required"})
		return
	}
	if !validBaseURL(req.OllamaBaseURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ollama_base_url must be an http(s) URL"})
		return
	}

	h.settings.setOllama(req.OllamaBaseURL, req.OllamaModel)
	c.JSON(http.StatusOK, h.current())
}

// POST /api/settings/ollama/test
// An empty body probes the current endpoint.
func (h *SettingsHandler) TestOllamaConnection(c *gin.Context) {
	var req struct {
		OllamaBaseURL string `json:"ollama_base_url"`
	}
	_ = c.ShouldBindJSON(&req)
	baseURL := strings.TrimRight(req.OllamaBaseURL, "/")
	if baseURL == "" {
		baseURL = h.settings.OllamaBaseURL()
	}
	if !validBaseURL(baseURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ollama_base_url must be an http(s) URL"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ollamaProbeTimeout)
	defer cancel()
	probe, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/tags", nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ollama_base_url must be an http(s) URL"})
		return
	}

	resp, err := h.client.Do(probe)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"connected": false, "error": err.Error()})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusServiceUnavailable, gin.H{"connected": false, "status_code": resp.StatusCode})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "ollama_base_url": baseURL})
}

func validBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
