package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type sessionService interface {
	ForDay(ctx context.Context, ks repository.Keyspace, date string) ([]models.Session, error)
	ForRange(ctx context.Context, ks repository.Keyspace) ([]models.DaySessions, error)
}

// SessionHandler serves the display sessions derived from slots.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler builds a new handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// List godoc
// @Summary List sessions
// @Description Sessions of one day when date is given, otherwise of every day that has any.
// @Tags Sessions
// @Produce json
// @Param planId path string true "Plan ID"
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	if date := c.Query("date"); date != "" {
		sessions, err := h.service.ForDay(c.Request.Context(), ks, date)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, models.DaySessions{Date: date, Sessions: sessions})
		return
	}

	days, err := h.service.ForRange(c.Request.Context(), ks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, days, map[string]interface{}{"days": len(days)})
}
