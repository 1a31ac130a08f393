package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
	"github.com/noah-isme/lernplan-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Datum", "Block", "Uhrzeit", "Titel", "Rechtsgebiet", "Unterrechtsgebiet", "Typ", "Erledigt"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered calendar ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders a plan's sessions as CSV or PDF.
type ExportService struct {
	docs   planDocuments
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(docs planDocuments, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{docs: docs, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the plan in format.
func (s *ExportService) Export(ctx context.Context, ks repository.Keyspace, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, contents: true, plan: true})
	if err != nil {
		return nil, err
	}
	dataset := buildCalendarDataset(snap)

	var (
		body        []byte
		contentType string
	)
	switch format {
	case ExportFormatPDF:
		title := "Lernplan"
		if snap.plan != nil && snap.plan.Name != "" {
			title = "Lernplan " + snap.plan.Name
		}
		body, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("lernplan_%s.%s", sanitizeFilename(ks.PlanID), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func buildCalendarDataset(snap *planSnapshot) export.Dataset {
	dataset := export.Dataset{Headers: exportHeaders}
	for _, day := range calendar.BuildSessionsForRange(snap.slots, snap.contents) {
		for _, session := range day.Sessions {
			done := "nein"
			if session.Completed {
				done = "ja"
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Datum":             day.Date,
				"Block":             strconv.Itoa(session.Position),
				"Uhrzeit":           session.StartTime + "-" + session.EndTime,
				"Titel":             session.Title,
				"Rechtsgebiet":      session.Rechtsgebiet,
				"Unterrechtsgebiet": session.Unterrechtsgebiet,
				"Typ":               string(session.BlockType),
				"Erledigt":          done,
			})
		}
	}
	return dataset
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "plan"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
