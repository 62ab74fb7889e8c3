package dto

const (
	TypeGem  = "gem"
	TypeNote = "note"
)

// Result is one ranked hit. Status is only set for thoughts.
type Result struct {
	Type    string  `json:"type"`
	ID      string  `json:"id"`
	Title   string  `json:"title,omitempty"`
	Content string  `json:"content"`
	Source  string  `json:"source,omitempty"`
	Status  string  `json:"status,omitempty"`
	Score   float64 `json:"score"`
}

type SearchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

type SemanticRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}
