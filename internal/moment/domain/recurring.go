package domain

const (
	MatchTypeExactEventID = "exact_event_id"
	MatchTypeFuzzyTitle   = "fuzzy_title"
)

// RecurringResult tells whether a moment was seen before and what helped last time
type RecurringResult struct {
	IsRecurring      bool     `json:"is_recurring"`
	MatchType        string   `json:"match_type,omitempty"`
	PreviousMomentID string   `json:"previous_moment_id,omitempty"`
	HelpfulGemIDs    []string `json:"helpful_gem_ids,omitempty"`
}
