package delivery

import (
	"net/http"

	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/internal/gem/usecase"

	"github.com/gin-gonic/gin"
)

type SourceHandler struct {
	sourceUsecase usecase.SourceUsecase
}

func NewSourceHandler(sourceUsecase usecase.SourceUsecase) *SourceHandler {
	return &SourceHandler{sourceUsecase: sourceUsecase}
}

func (h *SourceHandler) ListSources(c *gin.Context) {
	sources, err := h.sourceUsecase.ListSources(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": sources})
}

func (h *SourceHandler) CreateSource(c *gin.Context) {
	var req gemdto.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	source, err := h.sourceUsecase.CreateSource(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, source)
}

func (h *SourceHandler) GetSource(c *gin.Context) {
	source, err := h.sourceUsecase.GetSource(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, source)
}

func (h *SourceHandler) UpdateSource(c *gin.Context) {
	var req gemdto.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	source, err := h.sourceUsecase.UpdateSource(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, source)
}

func (h *SourceHandler) DeleteSource(c *gin.Context) {
	if err := h.sourceUsecase.DeleteSource(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
