package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type contentService interface {
	List(ctx context.Context, ks repository.Keyspace) ([]models.Content, error)
	Get(ctx context.Context, ks repository.Keyspace, id string) (*models.Content, error)
	Save(ctx context.Context, ks repository.Keyspace, req dto.CreateContentRequest) (*models.Content, error)
	Delete(ctx context.Context, ks repository.Keyspace, id string) error
}

// ContentHandler exposes the content registry of a plan.
type ContentHandler struct {
	service contentService
}

// NewContentHandler builds a new handler.
func NewContentHandler(service contentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// List godoc
// @Summary List contents
// @Tags Contents
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/{planId}/contents [get]
func (h *ContentHandler) List(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	contents, err := h.service.List(c.Request.Context(), ks)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, contents, map[string]interface{}{"total": len(contents)})
}

// Get godoc
// @Summary Get content
// @Tags Contents
// @Produce json
// @Param planId path string true "Plan ID"
// @Param contentId path string true "Content ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /plans/{planId}/contents/{contentId} [get]
func (h *ContentHandler) Get(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	content, err := h.service.Get(c.Request.Context(), ks, c.Param("contentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, content)
}

// Save godoc
// @Summary Create or replace content
// @Tags Contents
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Param payload body dto.CreateContentRequest true "Content"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId}/contents [post]
func (h *ContentHandler) Save(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateContentRequest
	if !bindJSON(c, &req, "invalid content payload") {
		return
	}
	content, err := h.service.Save(c.Request.Context(), ks, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// Delete godoc
// @Summary Delete content
// @Description Slots still pointing at the content stop producing sessions.
// @Tags Contents
// @Param planId path string true "Plan ID"
// @Param contentId path string true "Content ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /plans/{planId}/contents/{contentId} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), ks, c.Param("contentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
