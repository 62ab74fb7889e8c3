package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	notedomain "thoughtfolio-backend/internal/note/domain"
	searchdto "thoughtfolio-backend/internal/search/dto"
	"thoughtfolio-backend/pkg/fuzzy"
)

const (
	DefaultLimit = 20
	MaxLimit     = 50

	maxSuggestions = 10
)

var ErrSemanticUnavailable = errors.New("Semantic search is not available")

type GemReader interface {
	ListGems(userID string, filter gemdto.GemFilter) ([]gemdomain.Gem, int64, error)
	FindByIDs(userID string, ids []string) ([]gemdomain.Gem, error)
}

type NoteReader interface {
	AllNotes(userID string) ([]notedomain.Note, error)
}

// VectorIndex answers nearest-neighbour queries over thought embeddings
type VectorIndex interface {
	SemanticSearch(ctx context.Context, userID, query string, limit int) ([]string, []float64, error)
}

type SearchUsecase interface {
	Search(userID, query, kind string, limit int) (*searchdto.SearchResponse, error)
	Semantic(ctx context.Context, userID, query string, limit int) (*searchdto.SearchResponse, error)
	Suggestions(userID, query string, limit int) ([]string, error)
}

type searchUsecase struct {
	gems  GemReader
	notes NoteReader
	index VectorIndex
}

// NewSearchUsecase accepts a nil index when no vector store is configured
func NewSearchUsecase(gems GemReader, notes NoteReader, index VectorIndex) SearchUsecase {
	return &searchUsecase{gems: gems, notes: notes, index: index}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Search ranks thoughts and notes with the fuzzy scorer. kind narrows to "gem" or "note".
func (u *searchUsecase) Search(userID, query, kind string, limit int) (*searchdto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &searchdto.SearchResponse{Query: query, Results: []searchdto.Result{}}
	if query == "" {
		return resp, nil
	}

	var results []searchdto.Result
	if kind == "" || kind == searchdto.TypeGem {
		gems, _, err := u.gems.ListGems(userID, gemdto.GemFilter{})
		if err != nil {
			return nil, err
		}
		for _, g := range gems {
			score := fuzzy.Score(query,
				fuzzy.Field{Text: g.Content, Weight: 1.0},
				fuzzy.Field{Text: g.Source, Weight: 0.5},
			)
			if score <= 0 {
				continue
			}
			results = append(results, searchdto.Result{
				Type:    searchdto.TypeGem,
				ID:      g.ID,
				Content: g.Content,
				Source:  g.Source,
				Status:  string(g.Status),
				Score:   score,
			})
		}
	}

	if kind == "" || kind == searchdto.TypeNote {
		notes, err := u.notes.AllNotes(userID)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			score := fuzzy.Score(query,
				fuzzy.Field{Text: n.Title, Weight: 1.0},
				fuzzy.Field{Text: n.Content, Weight: 0.7},
				fuzzy.Field{Text: strings.Join(n.Tags, " "), Weight: 0.5},
			)
			if score <= 0 {
				continue
			}
			results = append(results, searchdto.Result{
				Type:    searchdto.TypeNote,
				ID:      n.ID,
				Title:   n.Title,
				Content: n.Content,
				Score:   score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	resp.Total = len(results)
	if limit = clampLimit(limit); len(results) > limit {
		results = results[:limit]
	}
	if results != nil {
		resp.Results = results
	}
	return resp, nil
}

// Semantic queries the vector index and loads the matching thoughts in rank order.
// Score is 1 / (1 + distance).
func (u *searchUsecase) Semantic(ctx context.Context, userID, query string, limit int) (*searchdto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &searchdto.SearchResponse{Query: query, Results: []searchdto.Result{}}
	if query == "" {
		return resp, nil
	}
	if u.index == nil {
		return nil, ErrSemanticUnavailable
	}

	limit = clampLimit(limit)
	ids, distances, err := u.index.SemanticSearch(ctx, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}
	if len(ids) == 0 {
		return resp, nil
	}

	gems, err := u.gems.FindByIDs(userID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]gemdomain.Gem, len(gems))
	for _, g := range gems {
		byID[g.ID] = g
	}

	for i, id := range ids {
		g, ok := byID[id]
		if !ok {
			// stale embedding
			continue
		}
		score := 0.0
		if i < len(distances) {
			score = 1 / (1 + distances[i])
		}
		resp.Results = append(resp.Results, searchdto.Result{
			Type:    searchdto.TypeGem,
			ID:      g.ID,
			Content: g.Content,
			Source:  g.Source,
			Status:  string(g.Status),
			Score:   score,
		})
	}
	resp.Total = len(resp.Results)
	return resp, nil
}

// Suggestions returns sources and note titles that contain any word of the query
func (u *searchUsecase) Suggestions(userID, query string, limit int) ([]string, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return []string{}, nil
	}
	if limit <= 0 || limit > maxSuggestions {
		limit = 5
	}

	gems, _, err := u.gems.ListGems(userID, gemdto.GemFilter{})
	if err != nil {
		return nil, err
	}
	notes, err := u.notes.AllNotes(userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(gems)+len(notes))
	for _, g := range gems {
		candidates = append(candidates, g.Source)
	}
	for _, n := range notes {
		candidates = append(candidates, n.Title)
	}

	seen := make(map[string]bool)
	suggestions := make([]string, 0, limit)
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] || !containsAnyWord(key, words) {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, c)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}

func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
