package analysis

import (
	"testing"

	"thoughtfolio-backend/internal/moment/domain"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stop words and short tokens dropped", "The quarterly budget review with my manager", []string{"quarterly", "budget", "review", "manager"}},
		{"punctuation splits words", "budget,review!planning...", []string{"budget", "review", "planning"}},
		{"deduped in first-seen order", "Budget budget BUDGET review", []string{"budget", "review"}},
		{"empty", "", []string{}},
		{"only stop words", "the and of to", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestExtractKeywords_ExcludesStopWordKeepsContentWord(t *testing.T) {
	for _, stop := range []string{"the", "with", "about", "should"} {
		got := ExtractKeywords(stop + " negotiation " + stop + " negotiation")
		assert.NotContains(t, got, stop)
		assert.Equal(t, []string{"negotiation"}, got)
	}
}

func TestAnalyzeEventTitle_Standup(t *testing.T) {
	got := AnalyzeEventTitle("Standup", "")
	assert.True(t, got.IsGeneric)
	assert.Equal(t, domain.EventTeamMeeting, got.DetectedEventType)
	assert.NotEmpty(t, got.Questions)
	assert.LessOrEqual(t, len(got.Questions), 2)
	assert.NotEmpty(t, got.TopicChips)
}

func TestAnalyzeEventTitle(t *testing.T) {
	tests := []struct {
		title       string
		description string
		eventType   domain.EventType
		generic     bool
	}{
		{"1:1 with Sarah", "", domain.EventOneOnOne, true},
		{"Interview: senior backend engineer candidate", "", domain.EventInterview, false},
		{"Quarterly roadmap planning for payments platform", "", domain.EventPlanning, false},
		{"Lunch with Alex", "", domain.EventSocial, true},
		{"Contract negotiation with Acme client", "Renewal terms and pricing", domain.EventExternal, false},
		{"Present Q3 results to leadership board", "", domain.EventPresentation, false},
		{"Sync", "", domain.EventTeamMeeting, true},
		{"Meeting", "", domain.EventUnknown, true},
		{"Dentist appointment downtown", "", domain.EventUnknown, true},
		{"Dentist appointment downtown clinic", "", domain.EventUnknown, false},
		{"Dentist appointment downtown", "Bring the insurance card", domain.EventUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := AnalyzeEventTitle(tt.title, tt.description)
			assert.Equal(t, tt.eventType, got.DetectedEventType)
			assert.Equal(t, tt.generic, got.IsGeneric)
			if !got.IsGeneric {
				assert.Empty(t, got.Questions)
			}
		})
	}
}
