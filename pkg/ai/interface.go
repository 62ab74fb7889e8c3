package ai

import "context"

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

// Image is a base64 encoded image attached to a request
type Image struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GenerateRequest is a provider-neutral text generation request
type GenerateRequest struct {
	Operation   string // used for metrics and logs
	Prompt      string
	Images      []Image
	JSON        bool
	Grounded    bool
	Temperature float64
}

// Generator is the interface every provider implements (Gemini, Ollama, ...)
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Candidate is a thought offered to the matcher
type Candidate struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	ContextTag string `json:"context_tag"`
}

// ThoughtMatch is a thought the model judged relevant to a moment
type ThoughtMatch struct {
	GemID           string  `json:"gem_id"`
	RelevanceScore  float64 `json:"relevance_score"`
	RelevanceReason string  `json:"relevance_reason"`
}

// CaptureInput is the raw material for an extraction
type CaptureInput struct {
	Content string
	Images  []Image
}

// CaptureItem is one extracted insight
type CaptureItem struct {
	Content     string  `json:"content"`
	Type        string  `json:"type"` // gem, note or source
	ContextSlug string  `json:"context_slug"`
	Source      string  `json:"source,omitempty"`
	SourceURL   string  `json:"source_url,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// DiscoveryItem is a thought suggested for a topic
type DiscoveryItem struct {
	Content     string `json:"content"`
	SourceTitle string `json:"source_title"`
	SourceURL   string `json:"source_url,omitempty"`
	ContextSlug string `json:"context_slug,omitempty"`
}

// Service is the high level assistant used by the use cases
type Service interface {
	MatchThoughts(ctx context.Context, description string, candidates []Candidate) ([]ThoughtMatch, error)
	ExtractCapture(ctx context.Context, in CaptureInput, contextSlugs []string) ([]CaptureItem, error)
	Discover(ctx context.Context, query, contextSlug string, grounded bool) ([]DiscoveryItem, error)
}
