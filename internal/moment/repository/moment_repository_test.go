package repository

import (
	"sync"
	"testing"

	"thoughtfolio-backend/internal/moment/domain"
	"thoughtfolio-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkFeedback_ChangesRowOnlyOnNewAnswer(t *testing.T) {
	db, err := database.OpenInMemory(&domain.Moment{}, &domain.MomentGem{})
	require.NoError(t, err)
	repo := NewMomentRepository(db)

	require.NoError(t, repo.SaveMatches([]domain.MomentGem{{MomentID: "m1", GemID: "g1", UserID: "u1", MatchSource: domain.MatchSourceAI}}))
	match, err := repo.FindMatch("m1", "g1")
	require.NoError(t, err)
	require.NotNil(t, match)

	changed, err := repo.MarkFeedback(match.ID, true)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkFeedback(match.ID, true)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = repo.MarkFeedback(match.ID, false)
	require.NoError(t, err)
	assert.True(t, changed)

	match, err = repo.FindMatch("m1", "g1")
	require.NoError(t, err)
	require.NotNil(t, match.WasHelpful)
	assert.False(t, *match.WasHelpful)
	assert.True(t, match.WasReviewed)

	changed, err = repo.MarkFeedback("missing", true)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMarkFeedback_ConcurrentSameAnswerChangesOnce(t *testing.T) {
	db, err := database.OpenInMemory(&domain.Moment{}, &domain.MomentGem{})
	require.NoError(t, err)
	repo := NewMomentRepository(db)

	require.NoError(t, repo.SaveMatches([]domain.MomentGem{{MomentID: "m1", GemID: "g1", UserID: "u1", MatchSource: domain.MatchSourceAI}}))
	match, err := repo.FindMatch("m1", "g1")
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			changed, err := repo.MarkFeedback(match.ID, true)
			assert.NoError(t, err)
			if changed {
				mu.Lock()
				changes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, changes)
}
