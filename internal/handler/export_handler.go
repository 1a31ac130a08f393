package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lernplan-api/internal/repository"
	"github.com/noah-isme/lernplan-api/internal/service"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, ks repository.Keyspace, format string) (*service.ExportResult, error)
}

// ExportHandler serves calendar downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Export the calendar
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param planId path string true "Plan ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /plans/{planId}/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	ks, ok := keyspaceFromContext(c)
	if !ok {
		return
	}
	result, err := h.service.Export(c.Request.Context(), ks, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, result.Filename, result.ContentType, result.Body)
}
