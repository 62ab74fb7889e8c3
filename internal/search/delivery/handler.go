package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	searchdto "thoughtfolio-backend/internal/search/dto"
	"thoughtfolio-backend/internal/search/usecase"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUsecase
}

func NewSearchHandler(searchUsecase usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

// GET /api/search?q=...&type=gem|note&limit=20
func (h *SearchHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	kind := c.Query("type")
	if kind != "" && kind != searchdto.TypeGem && kind != searchdto.TypeNote {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be gem or note"})
		return
	}

	resp, err := h.searchUsecase.Search(c.GetString("userID"), c.Query("q"), kind, limit)
	if err != nil {
		log.Printf("[SearchHandler] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/search/semantic
func (h *SearchHandler) Semantic(c *gin.Context) {
	var req searchdto.SemanticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	resp, err := h.searchUsecase.Semantic(c.Request.Context(), c.GetString("userID"), req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, usecase.ErrSemanticUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[SearchHandler] semantic search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/search/suggestions?q=...
func (h *SearchHandler) Suggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	suggestions, err := h.searchUsecase.Suggestions(c.GetString("userID"), c.Query("q"), limit)
	if err != nil {
		log.Printf("[SearchHandler] suggestions failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
