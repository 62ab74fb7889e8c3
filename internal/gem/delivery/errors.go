package delivery

import (
	"errors"
	"log"
	"net/http"

	gemdomain "thoughtfolio-backend/internal/gem/domain"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gemdomain.ErrGemNotFound),
		errors.Is(err, gemdomain.ErrContextNotFound),
		errors.Is(err, gemdomain.ErrSourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, gemdomain.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gemdomain.ErrContextFull),
		errors.Is(err, gemdomain.ErrInvalidThoughtLimit),
		errors.Is(err, gemdomain.ErrDefaultContext),
		errors.Is(err, gemdomain.ErrContentRequired),
		errors.Is(err, gemdomain.ErrInvalidStatus),
		errors.Is(err, gemdomain.ErrInvalidTransition),
		errors.Is(err, gemdomain.ErrInvalidCheckIn),
		errors.Is(err, gemdomain.ErrInvalidSourceType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[GemHandler] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
