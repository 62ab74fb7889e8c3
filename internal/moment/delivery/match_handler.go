package delivery

import (
	"encoding/json"
	"net/http"
	"strings"

	"thoughtfolio-backend/internal/moment/domain"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/internal/moment/usecase"
	"thoughtfolio-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

type matchRequest struct {
	Description string          `json:"description"`
	Gems        json.RawMessage `json:"gems"`
}

// decodeCandidates accepts only a JSON array. Entries that are not objects or miss
// an id or content are skipped.
func decodeCandidates(raw json.RawMessage) ([]ai.Candidate, error) {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return nil, domain.ErrInvalidGems
	}

	candidates := make([]ai.Candidate, 0, len(items))
	for _, item := range items {
		var mc momentdto.MatchCandidate
		if err := json.Unmarshal(item, &mc); err != nil {
			continue
		}
		candidates = append(candidates, ai.Candidate{ID: mc.ID, Content: mc.Content, ContextTag: mc.ContextTag})
	}
	return usecase.ValidCandidates(candidates), nil
}

// POST /api/moments/match
func (h *MomentHandler) MatchThoughts(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		respondError(c, domain.ErrDescriptionRequired)
		return
	}
	candidates, err := decodeCandidates(req.Gems)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.momentUsecase.MatchThoughts(c.Request.Context(), c.GetString("userID"), req.Description, candidates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
