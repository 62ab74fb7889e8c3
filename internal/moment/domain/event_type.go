package domain

type EventType string

const (
	EventOneOnOne     EventType = "1:1"
	EventTeamMeeting  EventType = "team_meeting"
	EventInterview    EventType = "interview"
	EventPresentation EventType = "presentation"
	EventReview       EventType = "review"
	EventPlanning     EventType = "planning"
	EventSocial       EventType = "social"
	EventExternal     EventType = "external"
	EventUnknown      EventType = "unknown"
)
