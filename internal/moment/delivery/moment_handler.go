package delivery

import (
	"net/http"
	"strconv"

	"thoughtfolio-backend/internal/moment/analysis"
	"thoughtfolio-backend/internal/moment/domain"
	momentdto "thoughtfolio-backend/internal/moment/dto"
	"thoughtfolio-backend/internal/moment/usecase"

	"github.com/gin-gonic/gin"
)

type MomentHandler struct {
	momentUsecase usecase.MomentUsecase
}

func NewMomentHandler(momentUsecase usecase.MomentUsecase) *MomentHandler {
	return &MomentHandler{momentUsecase: momentUsecase}
}

// POST /api/moments
func (h *MomentHandler) CreateMoment(c *gin.Context) {
	var req momentdto.CreateMomentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	resp, err := h.momentUsecase.CreateMoment(c.Request.Context(), c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GET /api/moments?status=active&limit=20&offset=0
func (h *MomentHandler) ListMoments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	resp, err := h.momentUsecase.ListMoments(c.GetString("userID"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/moments/:id
func (h *MomentHandler) GetMoment(c *gin.Context) {
	resp, err := h.momentUsecase.GetMoment(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/moments/:id/context
func (h *MomentHandler) UpdateContext(c *gin.Context) {
	var req momentdto.UpdateContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_context is required"})
		return
	}
	resp, err := h.momentUsecase.UpdateContext(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.UserContext)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/moments/:id/status
func (h *MomentHandler) UpdateStatus(c *gin.Context) {
	var req momentdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	moment, err := h.momentUsecase.UpdateStatus(c.GetString("userID"), c.Param("id"), domain.MomentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moment)
}

// POST /api/moments/:id/feedback
func (h *MomentHandler) RecordFeedback(c *gin.Context) {
	var req momentdto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gem_id and was_helpful are required"})
		return
	}
	if err := h.momentUsecase.RecordFeedback(c.GetString("userID"), c.Param("id"), req.GemID, *req.WasHelpful); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback recorded"})
}

// POST /api/moments/analyze-title
func (h *MomentHandler) AnalyzeTitle(c *gin.Context) {
	var req momentdto.AnalyzeTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	c.JSON(http.StatusOK, analysis.AnalyzeEventTitle(req.Title, req.Description))
}
