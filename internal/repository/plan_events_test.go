package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/models"
)

func TestLocalPlanEventsDelivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus := NewLocalPlanEvents()

	var got []models.PlanEvent
	require.NoError(t, bus.Subscribe(ctx, func(e models.PlanEvent) { got = append(got, e) }))
	require.NoError(t, bus.Publish(ctx, models.PlanEvent{PlanID: "p1", Kind: models.PlanEventUpdated}))

	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].PlanID)
}

func TestLocalPlanEventsRequiresCallback(t *testing.T) {
	assert.Error(t, NewLocalPlanEvents().Subscribe(context.Background(), nil))
}
