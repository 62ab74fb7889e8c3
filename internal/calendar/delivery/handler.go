package delivery

import (
	"errors"
	"log"
	"net/http"

	"thoughtfolio-backend/internal/calendar/domain"
	caldto "thoughtfolio-backend/internal/calendar/dto"
	"thoughtfolio-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{calendarUsecase: calendarUsecase}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCodeRequired),
		errors.Is(err, domain.ErrExchangeFailed),
		errors.Is(err, domain.ErrInvalidLeadTime),
		errors.Is(err, domain.ErrInvalidFilter),
		errors.Is(err, domain.ErrKeywordsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[CalendarHandler] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// GET /api/calendar/status
func (h *CalendarHandler) Status(c *gin.Context) {
	resp, err := h.calendarUsecase.GetStatus(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/calendar/connect
func (h *CalendarHandler) Connect(c *gin.Context) {
	resp, err := h.calendarUsecase.ConnectURL(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/calendar/callback
func (h *CalendarHandler) Callback(c *gin.Context) {
	var req caldto.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrCodeRequired)
		return
	}
	conn, err := h.calendarUsecase.HandleCallback(c.Request.Context(), c.GetString("userID"), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, caldto.StatusResponse{Connected: true, Connection: conn})
}

// PUT /api/calendar/settings
func (h *CalendarHandler) UpdateSettings(c *gin.Context) {
	var req caldto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	conn, err := h.calendarUsecase.UpdateSettings(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conn)
}

// POST /api/calendar/sync
func (h *CalendarHandler) Sync(c *gin.Context) {
	resp, err := h.calendarUsecase.Sync(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/calendar/events
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	events, err := h.calendarUsecase.ListUpcoming(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// DELETE /api/calendar
func (h *CalendarHandler) Disconnect(c *gin.Context) {
	if err := h.calendarUsecase.Disconnect(c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calendar disconnected"})
}
