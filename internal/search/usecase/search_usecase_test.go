package usecase

import (
	"context"
	"errors"
	"testing"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	notedomain "thoughtfolio-backend/internal/note/domain"
	searchdto "thoughtfolio-backend/internal/search/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGems struct {
	gems []gemdomain.Gem
}

func (s *stubGems) ListGems(userID string, filter gemdto.GemFilter) ([]gemdomain.Gem, int64, error) {
	return s.gems, int64(len(s.gems)), nil
}

func (s *stubGems) FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error) {
	var out []gemdomain.Gem
	for _, g := range s.gems {
		for _, id := range ids {
			if g.ID == id {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

type stubNotes struct {
	notes []notedomain.Note
}

func (s *stubNotes) AllNotes(userID string) ([]notedomain.Note, error) {
	return s.notes, nil
}

type stubIndex struct {
	ids       []string
	distances []float64
	err       error
}

func (s *stubIndex) SemanticSearch(ctx context.Context, userID, query string, limit int) ([]string, []float64, error) {
	return s.ids, s.distances, s.err
}

func fixture() (*stubGems, *stubNotes) {
	gems := &stubGems{gems: []gemdomain.Gem{
		{ID: "g1", Content: "Listen more than you speak in meetings", Source: "Dale Carnegie", Status: gemdomain.GemStatusActive},
		{ID: "g2", Content: "Small habits compound over time", Source: "Atomic Habits", Status: gemdomain.GemStatusActive},
		{ID: "g3", Content: "Write the test first", Status: gemdomain.GemStatusRetired},
	}}
	notes := &stubNotes{notes: []notedomain.Note{
		{ID: "n1", Title: "Meeting prep", Content: "Agenda and questions"},
		{ID: "n2", Title: "Reading list", Content: "Habits book", Tags: []string{"books"}},
	}}
	return gems, notes
}

func TestSearch_RanksAcrossTypes(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, nil)

	resp, err := uc.Search("u1", "habits", "", 0)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "g2", resp.Results[0].ID)
	assert.Equal(t, searchdto.TypeNote, resp.Results[1].Type)
	assert.GreaterOrEqual(t, resp.Results[0].Score, resp.Results[1].Score)
}

func TestSearch_ToleratesTypos(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, nil)

	resp, err := uc.Search("u1", "meetngs", searchdto.TypeGem, 0)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "g1", resp.Results[0].ID)
}

func TestSearch_TypeFilterAndLimit(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, nil)

	resp, err := uc.Search("u1", "meeting", searchdto.TypeNote, 0)
	require.NoError(t, err)
	for _, r := range resp.Results {
		assert.Equal(t, searchdto.TypeNote, r.Type)
	}

	resp, err = uc.Search("u1", "habits", "", 1)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Total)
}

func TestSearch_EmptyQuery(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, nil)

	resp, err := uc.Search("u1", "   ", "", 0)
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}

func TestSemantic_Unavailable(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, nil)

	_, err := uc.Semantic(context.Background(), "u1", "focus", 5)
	assert.ErrorIs(t, err, ErrSemanticUnavailable)
}

func TestSemantic_KeepsRankOrderAndSkipsStale(t *testing.T) {
	gems, notes := fixture()
	index := &stubIndex{ids: []string{"g2", "gone", "g1"}, distances: []float64{0, 0.5, 1}}
	uc := NewSearchUsecase(gems, notes, index)

	resp, err := uc.Semantic(context.Background(), "u1", "getting better slowly", 5)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "g2", resp.Results[0].ID)
	assert.InDelta(t, 1.0, resp.Results[0].Score, 0.0001)
	assert.Equal(t, "g1", resp.Results[1].ID)
	assert.InDelta(t, 0.5, resp.Results[1].Score, 0.0001)
}

func TestSemantic_IndexError(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, &stubIndex{err: errors.New("boom")})

	_, err := uc.Semantic(context.Background(), "u1", "focus", 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSemanticUnavailable)
}

func TestSuggestions(t *testing.T) {
	gems, notes := fixture()
	uc := NewSearchUsecase(gems, notes, nil)

	got, err := uc.Suggestions("u1", "habit", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Atomic Habits"}, got)

	got, err = uc.Suggestions("u1", "", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
