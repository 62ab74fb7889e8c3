package delivery

import (
	"net/http"

	gemdomain "thoughtfolio-backend/internal/gem/domain"
	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/internal/gem/usecase"

	"github.com/gin-gonic/gin"
)

type ContextHandler struct {
	contextUsecase usecase.ContextUsecase
}

func NewContextHandler(contextUsecase usecase.ContextUsecase) *ContextHandler {
	return &ContextHandler{contextUsecase: contextUsecase}
}

// GET /api/contexts
func (h *ContextHandler) ListContexts(c *gin.Context) {
	contexts, err := h.contextUsecase.ListContexts(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contexts": contexts})
}

// POST /api/contexts
func (h *ContextHandler) CreateContext(c *gin.Context) {
	var req gemdto.CreateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	ctx, err := h.contextUsecase.CreateContext(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ctx)
}

// GET /api/contexts/:id
func (h *ContextHandler) GetContext(c *gin.Context) {
	ctx, err := h.contextUsecase.GetContext(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx)
}

// PUT /api/contexts/:id
func (h *ContextHandler) UpdateContext(c *gin.Context) {
	var req gemdto.UpdateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// thought_limit sent as a non-number lands here
		c.JSON(http.StatusBadRequest, gin.H{"error": gemdomain.ErrInvalidThoughtLimit.Error()})
		return
	}
	ctx, err := h.contextUsecase.UpdateContext(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctx)
}

// DELETE /api/contexts/:id
func (h *ContextHandler) DeleteContext(c *gin.Context) {
	if err := h.contextUsecase.DeleteContext(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
