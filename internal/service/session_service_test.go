package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

func TestSessionServiceForDay(t *testing.T) {
	docs := exportDocs()
	svc := NewSessionService(docs)

	sessions, err := svc.ForDay(context.Background(), testKS, "2026-01-06")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Bereicherungsrecht", sessions[0].Title)
	assert.Equal(t, "14:00", sessions[0].StartTime)
	assert.True(t, sessions[0].Completed)

	empty, err := svc.ForDay(context.Background(), testKS, "2026-01-07")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionServiceForDayRejectsBadDate(t *testing.T) {
	svc := NewSessionService(newPlanDocsStub())

	_, err := svc.ForDay(context.Background(), testKS, "2026-13-01")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSessionServiceForRange(t *testing.T) {
	svc := NewSessionService(exportDocs())

	days, err := svc.ForRange(context.Background(), testKS)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-01-05", days[0].Date)
	assert.Equal(t, "2026-01-06", days[1].Date)
	assert.Equal(t, models.BlockTypeTheme, days[0].Sessions[0].BlockType)
}

func TestSessionServiceStoreFailure(t *testing.T) {
	docs := newPlanDocsStub()
	docs.err = errors.New("timeout")
	svc := NewSessionService(docs)

	_, err := svc.ForRange(context.Background(), testKS)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
