package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
	"github.com/noah-isme/lernplan-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) {
	return nil, errors.New("disk full")
}

func exportDocs() *planDocsStub {
	docs := newPlanDocsStub()
	docs.plan = &models.PlanMetadata{ID: "plan-1", Name: "Examen 2026"}
	docs.contents["c-1"] = models.Content{ID: "c-1", Title: "Bereicherungsrecht", Rechtsgebiet: "zivilrecht", Unterrechtsgebiet: "Schuldrecht BT", BlockType: models.BlockTypeTheme}
	docs.contents["c-2"] = models.Content{ID: "c-2", Title: "Mord", Rechtsgebiet: "strafrecht", BlockType: models.BlockTypeTheme}

	first := filled("2026-01-06", 3, "zivilrecht")
	cid1 := "c-1"
	first.ContentID = &cid1
	first.Completed = true
	second := filled("2026-01-05", 1, "strafrecht")
	cid2 := "c-2"
	second.ContentID = &cid2
	dangling := filled("2026-01-07", 1, "oeffentliches-recht")
	docs.slots["2026-01-06"] = []models.Slot{first}
	docs.slots["2026-01-05"] = []models.Slot{second}
	docs.slots["2026-01-07"] = []models.Slot{dangling}
	return docs
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(exportDocs(), nil, nil, zap.NewNop())

	result, err := svc.Export(context.Background(), testKS, "")
	require.NoError(t, err)

	assert.Equal(t, "lernplan_plan-1.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)
	lines := strings.Split(strings.TrimSpace(string(result.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Datum;Block;Uhrzeit;Titel;Rechtsgebiet;Unterrechtsgebiet;Typ;Erledigt", lines[0])
	assert.Equal(t, "2026-01-05;1;08:00-10:00;Mord;strafrecht;;theme;nein", lines[1])
	assert.Equal(t, "2026-01-06;3;14:00-16:00;Bereicherungsrecht;zivilrecht;Schuldrecht BT;theme;ja", lines[2])
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(exportDocs(), nil, nil, zap.NewNop())

	result, err := svc.Export(context.Background(), testKS, "PDF")
	require.NoError(t, err)

	assert.Equal(t, "lernplan_plan-1.pdf", result.Filename)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Body, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(exportDocs(), nil, nil, zap.NewNop())

	_, err := svc.Export(context.Background(), testKS, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRenderFailure(t *testing.T) {
	svc := NewExportService(exportDocs(), failingRenderer{}, nil, zap.NewNop())

	_, err := svc.Export(context.Background(), testKS, "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "plan", sanitizeFilename(""))
	assert.Equal(t, "mein_plan-2026", sanitizeFilename("mein plan/2026"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 150)), 100)
}
