package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type planService interface {
	Get(ctx context.Context, ks repository.Keyspace) (*models.PlanMetadata, error)
	Update(ctx context.Context, ks repository.Keyspace, req dto.UpdatePlanRequest) (*models.PlanMetadata, error)
}

// PlanHandler exposes plan metadata endpoints.
type PlanHandler struct {
	service planService
}

// NewPlanHandler builds a new handler.
func NewPlanHandler(service planService) *PlanHandler {
	return &PlanHandler{service: service}
}

// Get godoc
// @Summary Get plan settings
// @Tags Plans
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{planId} [get]
func (h *PlanHandler) Get(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	plan, err := h.service.Get(c.Request.Context(), ks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plan)
}

// Update godoc
// @Summary Update plan settings
// @Description Replaces the weighting and distribution mode read by the rule engine.
// @Tags Plans
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.UpdatePlanRequest true "Plan settings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdatePlanRequest
	if !bindJSON(c, &req, "invalid plan payload") {
		return
	}
	plan, err := h.service.Update(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plan)
}
