package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

func newSlotServiceForTest(docs *planDocsStub, events *eventsStub) *SlotService {
	svc := NewSlotService(docs, events, validator.New(), nil)
	svc.now = fixedClock
	return svc
}

func TestSlotServiceUpsertFillsDefaults(t *testing.T) {
	docs := newPlanDocsStub()
	events := &eventsStub{}
	svc := newSlotServiceForTest(docs, events)

	slot, err := svc.Upsert(context.Background(), testKS, dto.SlotInput{Date: "2026-01-06", Position: 2})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-06-2", slot.ID)
	assert.Equal(t, models.SlotStatusEmpty, slot.Status)
	assert.False(t, slot.IsLocked)
	assert.NotNil(t, slot.Tasks)
	assert.Equal(t, fixedNow, slot.CreatedAt)
	require.Len(t, docs.slots["2026-01-06"], 1)
	require.Len(t, events.events, 1)
	assert.Equal(t, models.PlanEventSlotsChanged, events.events[0].Kind)
	assert.Equal(t, "plan-1", events.events[0].PlanID)
}

func TestSlotServiceUpsertPreservesCreatedAt(t *testing.T) {
	docs := newPlanDocsStub()
	original := calendar.CreateEmptyBlock("2026-01-06", 1)
	original.CreatedAt = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	docs.slots["2026-01-06"] = []models.Slot{original}
	svc := newSlotServiceForTest(docs, &eventsStub{})

	cid := "c-1"
	slot, err := svc.Upsert(context.Background(), testKS, dto.SlotInput{Date: "2026-01-06", Position: 1, ContentID: &cid})
	require.NoError(t, err)

	assert.Equal(t, original.CreatedAt, slot.CreatedAt)
	assert.Equal(t, models.SlotStatusTopic, slot.Status)
	require.Len(t, docs.slots["2026-01-06"], 1)
}

func TestSlotServiceUpsertRequiresDateAndPosition(t *testing.T) {
	svc := newSlotServiceForTest(newPlanDocsStub(), &eventsStub{})

	_, err := svc.Upsert(context.Background(), testKS, dto.SlotInput{Date: "06.01.2026", Position: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Upsert(context.Background(), testKS, dto.SlotInput{Date: "2026-01-06"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSlotServiceBulkReplaceMergesByID(t *testing.T) {
	docs := newPlanDocsStub()
	kept := calendar.CreateEmptyBlock("2026-01-05", 1)
	replaced := calendar.CreateEmptyBlock("2026-01-05", 2)
	replaced.CreatedAt = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	docs.slots["2026-01-05"] = []models.Slot{kept, replaced}
	svc := newSlotServiceForTest(docs, &eventsStub{})

	merged, err := svc.BulkReplace(context.Background(), testKS, dto.BulkSlotsRequest{Slots: []dto.SlotInput{
		{Date: "2026-01-05", Position: 2, Title: "Deliktsrecht", Status: "topic"},
		{Date: "2026-01-07", Position: 1, BlockType: "free"},
	}})
	require.NoError(t, err)

	day := merged["2026-01-05"]
	require.Len(t, day, 2)
	assert.Equal(t, kept.ID, day[0].ID)
	assert.Equal(t, "Deliktsrecht", day[1].Title)
	assert.Equal(t, replaced.CreatedAt, day[1].CreatedAt)
	require.Len(t, merged["2026-01-07"], 1)
	assert.Equal(t, models.SlotStatusFree, merged["2026-01-07"][0].Status)
	assert.Equal(t, merged, docs.slots)
}

func TestSlotServiceBulkReplaceRejectsUnknownBlockType(t *testing.T) {
	svc := newSlotServiceForTest(newPlanDocsStub(), &eventsStub{})

	_, err := svc.BulkReplace(context.Background(), testKS, dto.BulkSlotsRequest{Slots: []dto.SlotInput{
		{Date: "2026-01-05", Position: 1, BlockType: "holiday"},
	}})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "blocktype")
}

func TestSlotServiceRejectsContradictingStatus(t *testing.T) {
	cid := "c-1"
	cases := []struct {
		name  string
		input dto.SlotInput
	}{
		{name: "empty with content", input: dto.SlotInput{Date: "2026-01-06", Position: 1, ContentID: &cid, Status: "empty"}},
		{name: "free with content", input: dto.SlotInput{Date: "2026-01-06", Position: 1, ContentID: &cid, Status: "free"}},
		{name: "free block with content", input: dto.SlotInput{Date: "2026-01-06", Position: 1, ContentID: &cid, BlockType: "free"}},
		{name: "topic on free block", input: dto.SlotInput{Date: "2026-01-06", Position: 1, BlockType: "free", Status: "topic"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			docs := newPlanDocsStub()
			svc := newSlotServiceForTest(docs, &eventsStub{})

			_, err := svc.Upsert(context.Background(), testKS, tc.input)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

			_, err = svc.BulkReplace(context.Background(), testKS, dto.BulkSlotsRequest{Slots: []dto.SlotInput{
				{Date: "2026-01-06", Position: 2},
				tc.input,
			}})
			require.Error(t, err)
			assert.Contains(t, appErrors.FromError(err).Message, "slots[1]")
			assert.Zero(t, docs.saves)
		})
	}
}

func TestSlotServiceContentSlotIsNeverAssignable(t *testing.T) {
	docs := newPlanDocsStub()
	docs.contents["c-2"] = models.Content{ID: "c-2", Rechtsgebiet: "zivilrecht"}
	docs.slots["2026-01-06"] = calendar.CreateDayBlocks("2026-01-06")
	svc := newSlotServiceForTest(docs, &eventsStub{})

	cid := "c-1"
	slot, err := svc.Upsert(context.Background(), testKS, dto.SlotInput{Date: "2026-01-06", Position: 1, ContentID: &cid, Status: "topic"})
	require.NoError(t, err)
	assert.False(t, slot.IsEmpty())

	assigned, err := svc.Assign(context.Background(), testKS, dto.AssignContentRequest{Date: "2026-01-06", ContentID: "c-2", Size: 1})
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.NotEqual(t, 1, assigned[0].Position)
	for _, s := range docs.slots["2026-01-06"] {
		if s.Position == 1 {
			assert.Equal(t, "c-1", *s.ContentID)
		}
	}
}

func TestSlotServiceAssign(t *testing.T) {
	docs := newPlanDocsStub()
	docs.contents["c-1"] = models.Content{ID: "c-1", Title: "Sachenrecht", Rechtsgebiet: "zivilrecht"}
	day := calendar.CreateDayBlocks("2026-01-06")
	day[0].Status = models.SlotStatusTopic
	docs.slots["2026-01-06"] = day
	svc := newSlotServiceForTest(docs, &eventsStub{})

	placed, err := svc.Assign(context.Background(), testKS, dto.AssignContentRequest{Date: "2026-01-06", ContentID: "c-1", Size: 2})
	require.NoError(t, err)

	require.Len(t, placed, 2)
	assert.Equal(t, 2, placed[0].Position)
	assert.Equal(t, 3, placed[1].Position)
	assert.Equal(t, day[1].CreatedAt, placed[0].CreatedAt)
	assert.Equal(t, 0, calendar.CountFreeBlocks(docs.slots["2026-01-06"]))
	assert.Len(t, calendar.GroupBlocksByTopic(docs.slots["2026-01-06"]), 1)
}

func TestSlotServiceAssignMaterializesNewDay(t *testing.T) {
	docs := newPlanDocsStub()
	docs.contents["c-1"] = models.Content{ID: "c-1"}
	svc := newSlotServiceForTest(docs, &eventsStub{})

	_, err := svc.Assign(context.Background(), testKS, dto.AssignContentRequest{Date: "2026-02-01", ContentID: "c-1", Size: 1})
	require.NoError(t, err)

	assert.Len(t, docs.slots["2026-02-01"], calendar.SlotsPerDay)
	assert.Equal(t, calendar.SlotsPerDay-1, calendar.CountFreeBlocks(docs.slots["2026-02-01"]))
}

func TestSlotServiceAssignCapacityExhausted(t *testing.T) {
	docs := newPlanDocsStub()
	docs.contents["c-1"] = models.Content{ID: "c-1"}
	day := calendar.CreateDayBlocks("2026-01-06")
	day[0].Status = models.SlotStatusTopic
	day[1] = calendar.CreateFreeBlock("2026-01-06", 2)
	docs.slots["2026-01-06"] = day
	svc := newSlotServiceForTest(docs, &eventsStub{})

	_, err := svc.Assign(context.Background(), testKS, dto.AssignContentRequest{Date: "2026-01-06", ContentID: "c-1", Size: 2})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoCapacity.Code, appErrors.FromError(err).Code)
	assert.Zero(t, docs.saves)
}

func TestSlotServiceAssignUnknownContent(t *testing.T) {
	svc := newSlotServiceForTest(newPlanDocsStub(), &eventsStub{})

	_, err := svc.Assign(context.Background(), testKS, dto.AssignContentRequest{Date: "2026-01-06", ContentID: "missing", Size: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSlotServiceSwap(t *testing.T) {
	docs := newPlanDocsStub()
	a := filled("2026-01-06", 1, "zivilrecht")
	b := filled("2026-01-07", 2, "strafrecht")
	docs.slots["2026-01-06"] = []models.Slot{a}
	docs.slots["2026-01-07"] = []models.Slot{b}
	events := &eventsStub{}
	svc := newSlotServiceForTest(docs, events)

	resp, err := svc.Swap(context.Background(), testKS, dto.SwapRequest{SlotA: a.ID, SlotB: b.ID})
	require.NoError(t, err)

	assert.Equal(t, models.SwapGreen, resp.Validation.Status)
	require.NotNil(t, resp.SlotA)
	assert.Equal(t, "strafrecht", docs.slots["2026-01-06"][0].Rechtsgebiet)
	assert.Equal(t, a.ID, docs.slots["2026-01-06"][0].ID)
	assert.Equal(t, "zivilrecht", docs.slots["2026-01-07"][0].Rechtsgebiet)
	assert.Len(t, events.events, 1)
}

func TestSlotServiceSwapRejectedLeavesPlanUntouched(t *testing.T) {
	docs := newPlanDocsStub()
	past := filled("2026-01-02", 1, "zivilrecht")
	future := filled("2026-01-07", 1, "zivilrecht")
	docs.slots["2026-01-02"] = []models.Slot{past}
	docs.slots["2026-01-07"] = []models.Slot{future}
	svc := newSlotServiceForTest(docs, &eventsStub{})

	resp, err := svc.Swap(context.Background(), testKS, dto.SwapRequest{SlotA: past.ID, SlotB: future.ID})
	require.NoError(t, err)

	assert.False(t, resp.Validation.Allowed)
	assert.Equal(t, models.SwapRed, resp.Validation.Status)
	assert.Nil(t, resp.SlotA)
	assert.Zero(t, docs.saves)
}

func TestSlotServiceSwapSameSlotRejected(t *testing.T) {
	svc := newSlotServiceForTest(newPlanDocsStub(), &eventsStub{})

	_, err := svc.Swap(context.Background(), testKS, dto.SwapRequest{SlotA: "x", SlotB: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSlotServiceCompleteWizard(t *testing.T) {
	docs := newPlanDocsStub()
	events := &eventsStub{}
	svc := newSlotServiceForTest(docs, events)

	slots, err := svc.CompleteWizard(context.Background(), testKS, dto.WizardRequest{
		StartDate:               "2026-01-05",
		EndDate:                 "2026-01-11",
		LearningDays:            []int{1, 2, 3, 4, 5},
		BlocksPerDay:            2,
		RechtsgebieteGewichtung: map[string]float64{"zivilrecht": 60, "strafrecht": 40},
		Verteilungsmodus:        "fokussiert",
	})
	require.NoError(t, err)

	require.Len(t, slots, 7)
	for date, day := range slots {
		assert.Len(t, day, calendar.SlotsPerDay, date)
	}
	assert.Equal(t, 2, calendar.CountFreeBlocks(slots["2026-01-05"]))
	assert.Zero(t, calendar.CountFreeBlocks(slots["2026-01-10"]))
	require.NotNil(t, docs.plan)
	assert.Equal(t, models.VerteilungFokussiert, docs.plan.Verteilungsmodus)
	assert.Equal(t, 2, docs.plan.BlocksPerDay)
	require.Len(t, events.events, 1)
	assert.Equal(t, models.PlanEventUpdated, events.events[0].Kind)
}

func TestSlotServiceCompleteWizardRejectsInvertedRange(t *testing.T) {
	svc := newSlotServiceForTest(newPlanDocsStub(), &eventsStub{})

	_, err := svc.CompleteWizard(context.Background(), testKS, dto.WizardRequest{
		StartDate: "2026-02-01", EndDate: "2026-01-01", LearningDays: []int{1}, BlocksPerDay: 3,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSlotServiceStoreFailure(t *testing.T) {
	docs := newPlanDocsStub()
	docs.err = errors.New("redis down")
	svc := newSlotServiceForTest(docs, &eventsStub{})

	_, err := svc.List(context.Background(), testKS)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestSlotServicePublishFailureDoesNotFailWrite(t *testing.T) {
	docs := newPlanDocsStub()
	svc := newSlotServiceForTest(docs, &eventsStub{err: errors.New("no subscribers")})

	_, err := svc.Upsert(context.Background(), testKS, dto.SlotInput{Date: "2026-01-06", Position: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, docs.saves)
}
