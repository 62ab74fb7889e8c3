package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccepts(t *testing.T) {
	solo := &CalendarEvent{Title: "Focus block", AttendeeCount: 1}
	meeting := &CalendarEvent{Title: "Design review", AttendeeCount: 4}
	interview := &CalendarEvent{Title: "Chat", Description: "Final INTERVIEW round", AttendeeCount: 2}

	all := &CalendarConnection{EventFilter: FilterAll}
	assert.True(t, all.Accepts(solo))

	meetings := &CalendarConnection{EventFilter: FilterMeetings}
	assert.False(t, meetings.Accepts(solo))
	assert.True(t, meetings.Accepts(meeting))

	keywords := &CalendarConnection{EventFilter: FilterKeywords, CustomKeywords: []string{"interview"}}
	assert.True(t, keywords.Accepts(interview))
	assert.False(t, keywords.Accepts(meeting))
}

func TestLeadTime(t *testing.T) {
	assert.Equal(t, 15*time.Minute, (&CalendarConnection{}).LeadTime())
	assert.Equal(t, 30*time.Minute, (&CalendarConnection{LeadTimeMinutes: 30}).LeadTime())
}
