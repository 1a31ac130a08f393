package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

func newContentServiceForTest(docs *planDocsStub) *ContentService {
	svc := NewContentService(docs, validator.New(), nil)
	svc.now = fixedClock
	return svc
}

func TestContentServiceSaveCreates(t *testing.T) {
	docs := newPlanDocsStub()
	svc := newContentServiceForTest(docs)

	content, err := svc.Save(context.Background(), testKS, dto.CreateContentRequest{
		Title:        "Rücktritt vom Versuch",
		Rechtsgebiet: "strafrecht",
		Tasks:        []models.Task{{Title: "Fall 12 lösen"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, content.ID)
	assert.Equal(t, models.BlockTypeTheme, content.BlockType)
	require.Len(t, content.Tasks, 1)
	assert.NotEmpty(t, content.Tasks[0].ID)
	assert.Equal(t, fixedNow, content.CreatedAt)
	assert.Contains(t, docs.contents, content.ID)
}

func TestContentServiceSaveReplacesKeepingCreatedAt(t *testing.T) {
	docs := newPlanDocsStub()
	created := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	docs.contents["c-1"] = models.Content{ID: "c-1", Title: "Alt", CreatedAt: created}
	svc := newContentServiceForTest(docs)

	content, err := svc.Save(context.Background(), testKS, dto.CreateContentRequest{ID: "c-1", Title: "Neu", BlockType: "repetition"})
	require.NoError(t, err)

	assert.Equal(t, created, content.CreatedAt)
	assert.Equal(t, fixedNow, content.UpdatedAt)
	assert.Equal(t, "Neu", docs.contents["c-1"].Title)
	assert.Equal(t, models.BlockTypeRepetition, docs.contents["c-1"].BlockType)
	assert.NotNil(t, content.Tasks)
}

func TestContentServiceSaveValidation(t *testing.T) {
	svc := newContentServiceForTest(newPlanDocsStub())

	_, err := svc.Save(context.Background(), testKS, dto.CreateContentRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Save(context.Background(), testKS, dto.CreateContentRequest{Title: "x", BlockType: "seminar"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestContentServiceListOrdersByCreation(t *testing.T) {
	docs := newPlanDocsStub()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	docs.contents["b"] = models.Content{ID: "b", CreatedAt: base}
	docs.contents["a"] = models.Content{ID: "a", CreatedAt: base}
	docs.contents["c"] = models.Content{ID: "c", CreatedAt: base.Add(-time.Hour)}
	svc := newContentServiceForTest(docs)

	contents, err := svc.List(context.Background(), testKS)
	require.NoError(t, err)

	ids := make([]string, 0, len(contents))
	for _, content := range contents {
		ids = append(ids, content.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestContentServiceGetAndDelete(t *testing.T) {
	docs := newPlanDocsStub()
	docs.contents["c-1"] = models.Content{ID: "c-1", Title: "Sachenrecht"}
	svc := newContentServiceForTest(docs)

	content, err := svc.Get(context.Background(), testKS, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Sachenrecht", content.Title)

	require.NoError(t, svc.Delete(context.Background(), testKS, "c-1"))
	assert.Empty(t, docs.contents)

	err = svc.Delete(context.Background(), testKS, "c-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), testKS, "c-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
