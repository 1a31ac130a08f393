package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type slotService interface {
	List(ctx context.Context, ks repository.Keyspace) (map[string][]models.Slot, error)
	BulkReplace(ctx context.Context, ks repository.Keyspace, req dto.BulkSlotsRequest) (map[string][]models.Slot, error)
	Upsert(ctx context.Context, ks repository.Keyspace, input dto.SlotInput) (*models.Slot, error)
	Assign(ctx context.Context, ks repository.Keyspace, req dto.AssignContentRequest) ([]models.Slot, error)
	Swap(ctx context.Context, ks repository.Keyspace, req dto.SwapRequest) (*dto.SwapResponse, error)
	CompleteWizard(ctx context.Context, ks repository.Keyspace, req dto.WizardRequest) (map[string][]models.Slot, error)
}

// SlotHandler exposes the slot grid of a plan.
type SlotHandler struct {
	service slotService
}

// NewSlotHandler builds a new handler.
func NewSlotHandler(service slotService) *SlotHandler {
	return &SlotHandler{service: service}
}

// List godoc
// @Summary List slots
// @Tags Slots
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	slots, err := h.service.List(c.Request.Context(), ks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SlotsResponse{SlotsByDate: slots})
}

// BulkReplace godoc
// @Summary Bulk replace slots
// @Description Merges the given slots into the stored grid by id. Stored creation times survive.
// @Tags Slots
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.BulkSlotsRequest true "Slots"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId}/slots [put]
func (h *SlotHandler) BulkReplace(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.BulkSlotsRequest
	if !bindJSON(c, &req, "invalid slots payload") {
		return
	}
	slots, err := h.service.BulkReplace(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SlotsResponse{SlotsByDate: slots})
}

// Upsert godoc
// @Summary Create or update one slot
// @Tags Slots
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.SlotInput true "Slot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId}/slots [post]
func (h *SlotHandler) Upsert(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.SlotInput
	if !bindJSON(c, &req, "invalid slot payload") {
		return
	}
	slot, err := h.service.Upsert(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slot)
}

// Assign godoc
// @Summary Place a content on a day
// @Tags Slots
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.AssignContentRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /plans/{planId}/slots/assign [post]
func (h *SlotHandler) Assign(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.AssignContentRequest
	if !bindJSON(c, &req, "invalid assignment payload") {
		return
	}
	slots, err := h.service.Assign(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slots)
}

// Swap godoc
// @Summary Swap the content of two slots
// @Description A swap the guard rejects answers 409 with the validation as data.
// @Tags Slots
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.SwapRequest true "Slot ids"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /plans/{planId}/slots/swap [post]
func (h *SlotHandler) Swap(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.SwapRequest
	if !bindJSON(c, &req, "invalid swap payload") {
		return
	}
	result, err := h.service.Swap(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Validation.Allowed {
		response.JSON(c, http.StatusConflict, result)
		return
	}
	response.OK(c, result)
}

// CompleteWizard godoc
// @Summary Materialize the plan from the setup wizard
// @Description Replaces every slot of the plan with a fresh grid for the date range.
// @Tags Slots
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.WizardRequest true "Wizard settings"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId}/wizard/complete [post]
func (h *SlotHandler) CompleteWizard(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.WizardRequest
	if !bindJSON(c, &req, "invalid wizard payload") {
		return
	}
	slots, err := h.service.CompleteWizard(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SlotsResponse{SlotsByDate: slots})
}
