package delivery

import (
	"errors"
	"log"
	"net/http"

	"thoughtfolio-backend/internal/capture/domain"
	capturedto "thoughtfolio-backend/internal/capture/dto"
	"thoughtfolio-backend/internal/capture/usecase"

	"github.com/gin-gonic/gin"
)

type CaptureHandler struct {
	captureUsecase usecase.CaptureUsecase
}

func NewCaptureHandler(captureUsecase usecase.CaptureUsecase) *CaptureHandler {
	return &CaptureHandler{captureUsecase: captureUsecase}
}

// POST /api/capture/analyze
func (h *CaptureHandler) Analyze(c *gin.Context) {
	var req capturedto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	resp, err := h.captureUsecase.Analyze(c.Request.Context(), c.GetString("userID"), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNothingToAnalyze),
			errors.Is(err, domain.ErrTooManyImages),
			errors.Is(err, domain.ErrImageTooLarge),
			errors.Is(err, domain.ErrInvalidImage),
			errors.Is(err, domain.ErrFetchFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrDailyLimit):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		default:
			log.Printf("[CaptureHandler] analyze failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/capture/usage
func (h *CaptureHandler) Usage(c *gin.Context) {
	resp, err := h.captureUsecase.Usage(c.GetString("userID"))
	if err != nil {
		log.Printf("[CaptureHandler] usage failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
