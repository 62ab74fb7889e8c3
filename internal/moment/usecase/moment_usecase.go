package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"thoughtfolio-backend/internal/moment/analysis"
	"thoughtfolio-backend/internal/moment/domain"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/internal/moment/repository"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/metrics"
)

const (
	maxMomentMatches = 5
	recurringScore   = 0.9

	reasonLearned   = "You found this helpful in similar moments"
	reasonRecurring = "Helpful the last time this event happened"
)

type momentUsecase struct {
	momentRepo repository.MomentRepository
	gems       GemSource
	learning   *LearningService
	recurring  *RecurringMatcher
	matcher    *Matcher
}

func NewMomentUsecase(momentRepo repository.MomentRepository, gems GemSource, learning *LearningService, recurring *RecurringMatcher, matcher *Matcher) MomentUsecase {
	return &momentUsecase{
		momentRepo: momentRepo,
		gems:       gems,
		learning:   learning,
		recurring:  recurring,
		matcher:    matcher,
	}
}

func (u *momentUsecase) MatchThoughts(ctx context.Context, userID, description string, candidates []ai.Candidate) (*MatchResult, error) {
	return u.matcher.Match(ctx, userID, description, candidates)
}

func (u *momentUsecase) HasMomentForEvent(userID, eventID string) (bool, error) {
	return u.momentRepo.ExistsForEvent(userID, eventID)
}

func (u *momentUsecase) CreateMoment(ctx context.Context, userID string, req *momentdto.CreateMomentRequest) (*momentdto.MomentResponse, error) {
	description := strings.TrimSpace(req.Description)
	title := strings.TrimSpace(req.CalendarEventTitle)
	if description == "" {
		description = title
	}
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}

	source := domain.MomentSourceManual
	if req.Source == string(domain.MomentSourceCalendar) || req.CalendarEventID != "" {
		source = domain.MomentSourceCalendar
	}

	titleForAnalysis := title
	if titleForAnalysis == "" {
		titleForAnalysis = description
	}
	// the event's own description, not the moment text which may repeat the title
	titleAnalysis := analysis.AnalyzeEventTitle(titleForAnalysis, strings.TrimSpace(req.CalendarEventDescription))

	moment := &domain.Moment{
		UserID:             userID,
		Description:        description,
		Source:             source,
		CalendarEventStart: req.CalendarEventStart,
		DetectedEventType:  titleAnalysis.DetectedEventType,
		UserContext:        strings.TrimSpace(req.UserContext),
		Status:             domain.MomentStatusActive,
	}
	if req.CalendarEventID != "" {
		id := req.CalendarEventID
		moment.CalendarEventID = &id
	}
	if title != "" {
		moment.CalendarEventTitle = &title
	}

	if err := u.momentRepo.Create(moment); err != nil {
		return nil, err
	}
	metrics.Get().MomentsCreated.WithLabelValues(string(source)).Inc()

	recurring, err := u.matchAndSave(ctx, userID, moment, nil)
	if err != nil {
		return nil, err
	}

	resp, err := u.buildResponse(userID, moment)
	if err != nil {
		return nil, err
	}
	resp.Analysis = &titleAnalysis
	resp.Recurring = recurring
	return resp, nil
}

// matchAndSave gathers learned, recurring and AI matches for the moment and stores them.
// keep holds gem ids already attached to the moment.
func (u *momentUsecase) matchAndSave(ctx context.Context, userID string, moment *domain.Moment, keep []string) (*domain.RecurringResult, error) {
	candidates, err := u.gems.ActiveCandidates(userID)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		active[c.ID] = true
	}

	seen := make(map[string]bool)
	for _, id := range keep {
		seen[id] = true
	}
	var matches []domain.MomentGem
	add := func(gemID string, score float64, reason string, source domain.MatchSource) {
		if !active[gemID] || seen[gemID] || len(keep)+len(matches) >= maxMomentMatches {
			return
		}
		seen[gemID] = true
		matches = append(matches, domain.MomentGem{
			MomentID:        moment.ID,
			GemID:           gemID,
			UserID:          userID,
			RelevanceScore:  score,
			RelevanceReason: reason,
			MatchSource:     source,
		})
	}

	learned, err := u.learning.GetLearnedThoughts(userID, BuildPatterns(moment))
	if err != nil {
		log.Printf("[MomentUsecase] learned lookup failed for moment %s: %v", moment.ID, err)
	}
	for _, l := range learned {
		add(l.GemID, l.Confidence, reasonLearned, domain.MatchSourceLearned)
	}

	recurring, err := u.recurring.CheckRecurring(userID, moment)
	if err != nil {
		log.Printf("[MomentUsecase] recurring check failed for moment %s: %v", moment.ID, err)
		recurring = &domain.RecurringResult{IsRecurring: false}
	}
	for _, id := range recurring.HelpfulGemIDs {
		add(id, recurringScore, reasonRecurring, domain.MatchSourceRecurring)
	}

	if len(keep)+len(matches) < maxMomentMatches {
		remaining := make([]ai.Candidate, 0, len(candidates))
		for _, c := range candidates {
			if !seen[c.ID] {
				remaining = append(remaining, c)
			}
		}

		result, err := u.matcher.Match(ctx, userID, matchText(moment), remaining)
		switch {
		case err == nil:
			moment.AIProcessingMs = result.ProcessingTimeMs
			for _, m := range result.Matches {
				add(m.GemID, m.RelevanceScore, m.RelevanceReason, domain.MatchSourceAI)
			}
		case errors.Is(err, domain.ErrRateLimited), errors.Is(err, domain.ErrAIUnavailable):
			log.Printf("[MomentUsecase] skipping AI match for moment %s: %v", moment.ID, err)
		default:
			log.Printf("[MomentUsecase] AI match failed for moment %s: %v", moment.ID, err)
		}
	}

	if err := u.momentRepo.SaveMatches(matches); err != nil {
		return nil, err
	}
	for _, m := range matches {
		metrics.Get().MomentMatches.WithLabelValues(string(m.MatchSource)).Inc()
	}

	moment.GemsMatchedCount = len(keep) + len(matches)
	if err := u.momentRepo.Update(moment); err != nil {
		return nil, err
	}
	return recurring, nil
}

func matchText(m *domain.Moment) string {
	var sb strings.Builder
	if title := m.Title(); title != "" && title != m.Description {
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	sb.WriteString(m.Description)
	if m.UserContext != "" {
		sb.WriteString("\nAdditional context: ")
		sb.WriteString(m.UserContext)
	}
	return sb.String()
}

func (u *momentUsecase) GetMoment(userID, id string) (*momentdto.MomentResponse, error) {
	moment, err := u.findMoment(userID, id)
	if err != nil {
		return nil, err
	}
	return u.buildResponse(userID, moment)
}

func (u *momentUsecase) findMoment(userID, id string) (*domain.Moment, error) {
	moment, err := u.momentRepo.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if moment == nil {
		return nil, domain.ErrMomentNotFound
	}
	return moment, nil
}

func (u *momentUsecase) buildResponse(userID string, moment *domain.Moment) (*momentdto.MomentResponse, error) {
	matches, err := u.momentRepo.ListMatches(moment.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.GemID)
	}
	gems, err := u.gems.FindByIDs(userID, ids)
	if err != nil {
		return nil, err
	}
	content := make(map[string]int, len(gems))
	for i, g := range gems {
		content[g.ID] = i
	}

	views := make([]momentdto.MatchedGem, 0, len(matches))
	for _, m := range matches {
		i, ok := content[m.GemID]
		if !ok {
			// released since it was matched
			continue
		}
		views = append(views, momentdto.MatchedGem{
			GemID:           m.GemID,
			Content:         gems[i].Content,
			Source:          gems[i].Source,
			RelevanceScore:  m.RelevanceScore,
			RelevanceReason: m.RelevanceReason,
			MatchSource:     m.MatchSource,
			WasHelpful:      m.WasHelpful,
			WasReviewed:     m.WasReviewed,
		})
	}
	return &momentdto.MomentResponse{Moment: moment, Matches: views}, nil
}

func (u *momentUsecase) ListMoments(userID, status string, limit, offset int) (*momentdto.MomentsResponse, error) {
	st := domain.MomentStatus(status)
	if st != "" && !validMomentStatus(st) {
		return nil, domain.ErrInvalidStatus
	}
	moments, total, err := u.momentRepo.List(userID, st, limit, offset)
	if err != nil {
		return nil, err
	}
	return &momentdto.MomentsResponse{Moments: moments, Total: total}, nil
}

// UpdateContext stores the user's enrichment and re-runs matching, keeping reviewed matches
func (u *momentUsecase) UpdateContext(ctx context.Context, userID, id, userContext string) (*momentdto.MomentResponse, error) {
	moment, err := u.findMoment(userID, id)
	if err != nil {
		return nil, err
	}
	moment.UserContext = strings.TrimSpace(userContext)

	if err := u.momentRepo.DeleteUnreviewedMatches(moment.ID); err != nil {
		return nil, err
	}
	reviewed, err := u.momentRepo.ListMatches(moment.ID)
	if err != nil {
		return nil, err
	}
	keep := make([]string, 0, len(reviewed))
	for _, m := range reviewed {
		keep = append(keep, m.GemID)
	}

	recurring, err := u.matchAndSave(ctx, userID, moment, keep)
	if err != nil {
		return nil, err
	}

	resp, err := u.buildResponse(userID, moment)
	if err != nil {
		return nil, err
	}
	titleAnalysis := analysis.AnalyzeEventTitle(moment.Title(), moment.Description)
	resp.Analysis = &titleAnalysis
	resp.Recurring = recurring
	return resp, nil
}

func validMomentStatus(s domain.MomentStatus) bool {
	switch s {
	case domain.MomentStatusActive, domain.MomentStatusCompleted, domain.MomentStatusDismissed:
		return true
	}
	return false
}

func (u *momentUsecase) UpdateStatus(userID, id string, status domain.MomentStatus) (*domain.Moment, error) {
	if !validMomentStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	moment, err := u.findMoment(userID, id)
	if err != nil {
		return nil, err
	}
	moment.Status = status
	if err := u.momentRepo.Update(moment); err != nil {
		return nil, err
	}
	return moment, nil
}

// RecordFeedback stores helpful/not helpful on a match and feeds the learning store.
// Repeating the same answer is a no-op so double submissions do not double count.
func (u *momentUsecase) RecordFeedback(userID, momentID, gemID string, helpful bool) error {
	moment, err := u.findMoment(userID, momentID)
	if err != nil {
		return err
	}
	match, err := u.momentRepo.FindMatch(moment.ID, gemID)
	if err != nil {
		return err
	}
	if match == nil {
		return domain.ErrMatchNotFound
	}

	changed, err := u.momentRepo.MarkFeedback(match.ID, helpful)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if helpful {
		err = u.learning.RecordHelpful(userID, moment, gemID)
	} else {
		err = u.learning.RecordNotHelpful(userID, gemID)
	}
	if err != nil {
		return err
	}
	metrics.Get().LearningFeedback.WithLabelValues(strconv.FormatBool(helpful)).Inc()
	return nil
}
