package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/middleware"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type ruleService interface {
	Violations(ctx context.Context, ks repository.Keyspace) (*dto.ViolationReport, error)
	Redistribute(ctx context.Context, ks repository.Keyspace, req dto.RedistributeRequest) (*dto.RedistributeResponse, error)
	ValidateSwap(ctx context.Context, ks repository.Keyspace, req dto.SwapRequest) (*models.SwapValidation, error)
}

// RuleHandler exposes the rule engine.
type RuleHandler struct {
	service ruleService
}

// NewRuleHandler builds a new handler.
func NewRuleHandler(service ruleService) *RuleHandler {
	return &RuleHandler{service: service}
}

// Violations godoc
// @Summary Check rule violations
// @Description Advisory report of weighting and distribution mode violations.
// @Tags Rules
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/rules/violations [get]
func (h *RuleHandler) Violations(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	report, err := h.service.Violations(c.Request.Context(), ks)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, report.Cached)
	response.OK(c, report, middleware.ExtractMeta(c))
}

// Redistribute godoc
// @Summary Redistribute future content
// @Description Previews the redistribution, or stores it when apply is true.
// @Tags Rules
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.RedistributeRequest false "Options"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/rules/redistribute [post]
func (h *RuleHandler) Redistribute(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	// An empty body means a preview from today.
	var req dto.RedistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid redistribution payload"))
		return
	}
	result, err := h.service.Redistribute(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result, map[string]interface{}{"unplaced": len(result.Unplaced)})
}

// ValidateSwap godoc
// @Summary Pre-check a swap
// @Tags Rules
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.SwapRequest true "Slot ids"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{planId}/rules/validate-swap [post]
func (h *RuleHandler) ValidateSwap(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.SwapRequest
	if !bindJSON(c, &req, "invalid swap payload") {
		return
	}
	result, err := h.service.ValidateSwap(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
