package analysis

import (
	"regexp"
	"strings"

	"thoughtfolio-backend/internal/moment/domain"
)

type eventRule struct {
	eventType domain.EventType
	patterns  []*regexp.Regexp
}

func rx(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// Order matters: the first matching category wins
var eventRules = []eventRule{
	{domain.EventOneOnOne, rx(
		`\b1\s*[:\-]?\s*on\s*[:\-]?\s*1\b`, `\b1\s*:\s*1\b`, `\bone[\s-]on[\s-]one\b`,
		`\bcatch[\s-]?up with\b`, `\bcheck[\s-]?in with\b`, `\bmentor(ing|ship)?\b`, `\bcoaching\b`,
	)},
	{domain.EventTeamMeeting, rx(
		`\bstand[\s-]?up\b`, `\bscrum\b`, `\bdaily\b`, `\bteam\b`, `\bsync\b`, `\ball[\s-]?hands\b`,
		`\bweekly\b`, `\bhuddle\b`, `\bstaff meeting\b`, `\btown[\s-]?hall\b`,
	)},
	{domain.EventInterview, rx(
		`\binterview`, `\bphone screen\b`, `\bscreening\b`, `\bcandidate\b`, `\bhiring\b`, `\bonsite\b`,
	)},
	{domain.EventPresentation, rx(
		`\bpresent(ation|ing)?\b`, `\bdemo\b`, `\bkeynote\b`, `\bpitch\b`, `\bwebinar\b`, `\btalk\b`,
		`\bshowcase\b`, `\bworkshop\b`,
	)},
	{domain.EventReview, rx(
		`\breview\b`, `\bretro(spective)?\b`, `\bpost[\s-]?mortem\b`, `\bfeedback\b`, `\bperformance\b`,
		`\bappraisal\b`, `\bdebrief\b`,
	)},
	{domain.EventPlanning, rx(
		`\bplan(ning)?\b`, `\bstrategy\b`, `\broadmap\b`, `\bkick[\s-]?off\b`, `\bbrainstorm`,
		`\bsprint\b`, `\boffsite\b`, `\bgoals?\b`, `\bokrs?\b`,
	)},
	{domain.EventSocial, rx(
		`\blunch\b`, `\bdinner\b`, `\bcoffee\b`, `\bdrinks\b`, `\bhappy hour\b`, `\bparty\b`,
		`\bcelebration\b`, `\bbirthday\b`, `\bbreakfast\b`, `\bsocial\b`,
	)},
	{domain.EventExternal, rx(
		`\bclient\b`, `\bcustomer\b`, `\bvendor\b`, `\bpartner(ship)?\b`, `\bsales\b`, `\binvestor`,
		`\bexternal\b`, `\bprospect\b`, `\bnegotiation\b`,
	)},
}

var genericTitle = regexp.MustCompile(`(?i)^(meeting|meet|sync|sync[\s-]?up|1\s*:\s*1|1\s*on\s*1|one[\s-]on[\s-]one|check[\s-]?in|catch[\s-]?up|stand[\s-]?up|daily|weekly|call|chat|quick chat|touch base|discussion|team meeting|team sync|weekly sync|review|busy|hold|block|focus time|event)$`)

// TitleAnalysis is the classification of a moment title
type TitleAnalysis struct {
	DetectedEventType domain.EventType `json:"detected_event_type"`
	IsGeneric         bool             `json:"is_generic"`
	MeaningfulWords   int              `json:"meaningful_words"`
	Questions         []string         `json:"questions,omitempty"`
	TopicChips        []string         `json:"topic_chips,omitempty"`
}

var followUps = map[domain.EventType][]string{
	domain.EventOneOnOne:     {"Who is this 1:1 with?", "What do you want to get out of it?"},
	domain.EventTeamMeeting:  {"What is the main topic today?", "Is there anything you're worried about?"},
	domain.EventInterview:    {"Are you interviewing or being interviewed?", "What role is it for?"},
	domain.EventPresentation: {"What are you presenting?", "Who is the audience?"},
	domain.EventReview:       {"What is being reviewed?", "Are you giving or receiving feedback?"},
	domain.EventPlanning:     {"What are you planning?", "What decision needs to come out of it?"},
	domain.EventSocial:       {"Who will be there?"},
	domain.EventExternal:     {"Who are you meeting?", "What outcome do you want?"},
	domain.EventUnknown:      {"What is this event about?", "How are you feeling going in?"},
}

var topicChips = map[domain.EventType][]string{
	domain.EventOneOnOne:     {"Career growth", "Feedback", "Blockers", "Difficult conversation", "Recognition"},
	domain.EventTeamMeeting:  {"Status update", "Decision making", "Conflict", "Priorities", "Team morale"},
	domain.EventInterview:    {"Hiring", "Being interviewed", "Culture fit", "Technical"},
	domain.EventPresentation: {"Public speaking", "Persuasion", "Storytelling", "Q&A"},
	domain.EventReview:       {"Giving feedback", "Receiving feedback", "Performance", "Lessons learned"},
	domain.EventPlanning:     {"Prioritization", "Strategy", "Scope", "Deadlines"},
	domain.EventSocial:       {"Networking", "Small talk", "Relationships"},
	domain.EventExternal:     {"Negotiation", "Sales", "Partnership", "First impression"},
	domain.EventUnknown:      {"Focus", "Conflict", "Feedback", "Stress", "Relationships"},
}

// DetectEventType classifies the title (and description) into an event category
func DetectEventType(title, description string) domain.EventType {
	text := strings.TrimSpace(title + " " + description)
	for _, rule := range eventRules {
		for _, p := range rule.patterns {
			if p.MatchString(text) {
				return rule.eventType
			}
		}
	}
	return domain.EventUnknown
}

// countMeaningfulWords counts words that are not stop-words and longer than one character
func countMeaningfulWords(title string) int {
	count := 0
	for _, w := range strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	}) {
		if len(w) > 1 && !stopWords[w] {
			count++
		}
	}
	return count
}

// AnalyzeEventTitle classifies the title and decides whether it is too generic to match
// well without more context from the user.
func AnalyzeEventTitle(title, description string) TitleAnalysis {
	eventType := DetectEventType(title, description)
	trimmed := strings.TrimSpace(title)
	meaningful := countMeaningfulWords(trimmed)

	generic := meaningful < 3 ||
		genericTitle.MatchString(trimmed) ||
		(meaningful < 4 && len(strings.TrimSpace(description)) < 10)

	analysis := TitleAnalysis{
		DetectedEventType: eventType,
		IsGeneric:         generic,
		MeaningfulWords:   meaningful,
	}
	if generic {
		analysis.Questions = append([]string(nil), followUps[eventType]...)
		analysis.TopicChips = append([]string(nil), topicChips[eventType]...)
	}
	return analysis
}
