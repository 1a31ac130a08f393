package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type migrationService interface {
	Migrate(ctx context.Context, ks repository.Keyspace, req dto.MigrateRequest) (*dto.MigrateResponse, error)
}

// MigrationHandler imports legacy plans.
type MigrationHandler struct {
	service migrationService
}

// NewMigrationHandler builds a new handler.
func NewMigrationHandler(service migrationService) *MigrationHandler {
	return &MigrationHandler{service: service}
}

// Migrate godoc
// @Summary Migrate legacy slots
// @Description Splits slots with embedded content into contents and referencing slots.
// @Tags Migration
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.MigrateRequest true "Legacy slots by date"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId}/migrate [post]
func (h *MigrationHandler) Migrate(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.MigrateRequest
	if !bindJSON(c, &req, "invalid migration payload") {
		return
	}
	result, err := h.service.Migrate(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
