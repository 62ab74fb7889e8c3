package delivery

import (
	"errors"
	"log"
	"net/http"

	"thoughtfolio-backend/internal/discovery/domain"
	discoverydto "thoughtfolio-backend/internal/discovery/dto"
	"thoughtfolio-backend/internal/discovery/usecase"
	gemdomain "thoughtfolio-backend/internal/gem/domain"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	discoveryUsecase usecase.DiscoveryUsecase
}

func NewDiscoveryHandler(discoveryUsecase usecase.DiscoveryUsecase) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryUsecase: discoveryUsecase}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDiscoveryNotFound), errors.Is(err, gemdomain.ErrContextNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrQueryRequired), errors.Is(err, gemdomain.ErrContextFull):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAlreadyHandled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("[DiscoveryHandler] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// POST /api/discover
func (h *DiscoveryHandler) Discover(c *gin.Context) {
	var req discoverydto.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	resp, err := h.discoveryUsecase.Discover(c.Request.Context(), c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/discover?status=new
func (h *DiscoveryHandler) List(c *gin.Context) {
	items, err := h.discoveryUsecase.List(c.GetString("userID"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discoveries": items})
}

// POST /api/discover/:id/save
func (h *DiscoveryHandler) Save(c *gin.Context) {
	var req discoverydto.SaveRequest
	// body is optional
	_ = c.ShouldBindJSON(&req)

	gem, err := h.discoveryUsecase.Save(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gem)
}

// POST /api/discover/:id/skip
func (h *DiscoveryHandler) Skip(c *gin.Context) {
	if err := h.discoveryUsecase.Skip(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discovery skipped"})
}
