package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// InlineData is a base64 encoded blob sent alongside the prompt (images)
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Request describes a single generateContent call
type Request struct {
	Prompt      string
	Images      []InlineData
	JSON        bool // ask for application/json output
	Grounded    bool // enable the google_search tool
	Temperature float64
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type GeminiService struct {
	ApiKey     string
	Model      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGeminiService creates a client. rps paces outbound calls; zero disables pacing.
func NewGeminiService(apiKey, model string, rps float64) *GeminiService {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
	return &GeminiService{
		ApiKey:     apiKey,
		Model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		limiter:    limiter,
	}
}

// WithBaseURL points the client at another endpoint (used by tests)
func (g *GeminiService) WithBaseURL(baseURL string) *GeminiService {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

// GenerateContent sends the request and returns the concatenated text of the first candidate
func (g *GeminiService) GenerateContent(ctx context.Context, req Request) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.Model, g.ApiKey)

	parts := []part{{Text: req.Prompt}}
	for i := range req.Images {
		parts = append(parts, part{InlineData: &req.Images[i]})
	}

	generationConfig := map[string]interface{}{
		"temperature": req.Temperature,
	}
	// JSON mode is not supported together with tools
	if req.JSON && !req.Grounded {
		generationConfig["responseMimeType"] = "application/json"
	}

	payload := map[string]interface{}{
		"contents":         []content{{Parts: parts}},
		"generationConfig": generationConfig,
	}
	if req.Grounded {
		payload["tools"] = []map[string]interface{}{
			{"google_search": map[string]interface{}{}},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}
	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response text")
	}
	return sb.String(), nil
}
