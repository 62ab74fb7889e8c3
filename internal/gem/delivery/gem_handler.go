package delivery

import (
	"net/http"
	"strconv"

	gemdto "thoughtfolio-backend/internal/gem/dto"
	"thoughtfolio-backend/internal/gem/usecase"

	"github.com/gin-gonic/gin"
)

type GemHandler struct {
	gemUsecase usecase.GemUsecase
}

func NewGemHandler(gemUsecase usecase.GemUsecase) *GemHandler {
	return &GemHandler{gemUsecase: gemUsecase}
}

// GET /api/gems?status=active&context_id=...&limit=50&offset=0
func (h *GemHandler) ListGems(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filter := gemdto.GemFilter{
		Status:    c.Query("status"),
		ContextID: c.Query("context_id"),
		Limit:     limit,
		Offset:    offset,
	}
	gems, total, err := h.gemUsecase.ListGems(c.GetString("userID"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gemdto.GemsResponse{Gems: gems, Total: total, Limit: limit, Offset: offset})
}

// POST /api/gems
func (h *GemHandler) CreateGem(c *gin.Context) {
	var req gemdto.CreateGemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}
	gem, err := h.gemUsecase.CreateGem(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gem)
}

// GET /api/gems/:id
func (h *GemHandler) GetGem(c *gin.Context) {
	gem, err := h.gemUsecase.GetGem(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gem)
}

// PUT /api/gems/:id
func (h *GemHandler) UpdateGem(c *gin.Context) {
	var req gemdto.UpdateGemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gem, err := h.gemUsecase.UpdateGem(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gem)
}

// DELETE /api/gems/:id
func (h *GemHandler) ReleaseGem(c *gin.Context) {
	if err := h.gemUsecase.Release(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thought released"})
}

// POST /api/gems/:id/checkin
func (h *GemHandler) CheckIn(c *gin.Context) {
	var req gemdto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.gemUsecase.CheckIn(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/gems/:id/retire
func (h *GemHandler) Retire(c *gin.Context) {
	gem, err := h.gemUsecase.Retire(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gem)
}

// POST /api/gems/:id/restore
func (h *GemHandler) Restore(c *gin.Context) {
	gem, err := h.gemUsecase.Restore(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gem)
}

// POST /api/gems/:id/graduate
func (h *GemHandler) Graduate(c *gin.Context) {
	gem, err := h.gemUsecase.Graduate(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gem)
}

// GET /api/gems/daily
func (h *GemHandler) DailyThought(c *gin.Context) {
	gem, err := h.gemUsecase.DailyThought(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gem": gem})
}
