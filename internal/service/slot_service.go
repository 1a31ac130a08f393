package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

// SlotService owns every write to a plan's slot grid. Each call is a single
// read-modify-write of the slot document; concurrent writers race and the last one wins.
type SlotService struct {
	docs      planDocuments
	events    planEventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSlotService constructs a SlotService.
func NewSlotService(docs planDocuments, events planEventPublisher, validate *validator.Validate, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{
		docs:      docs,
		events:    events,
		validator: registerPlanValidations(validate),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns all slots of a plan keyed by date, each day sorted by position.
func (s *SlotService) List(ctx context.Context, ks repository.Keyspace) (map[string][]models.Slot, error) {
	slots, err := s.docs.LoadSlots(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load slots")
	}
	for date, day := range slots {
		slots[date] = calendar.SortByPosition(day)
	}
	return slots, nil
}

// BulkReplace merges the incoming slots into the stored ones by id. Incoming values
// win, but the stored createdAt of a slot survives.
func (s *SlotService) BulkReplace(ctx context.Context, ks repository.Keyspace, req dto.BulkSlotsRequest) (map[string][]models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid slots payload")
	}
	stored, err := s.docs.LoadSlots(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load slots")
	}

	ts := s.now()
	incoming := make([]models.Slot, 0, len(req.Slots))
	for i, input := range req.Slots {
		slot, err := slotFromInput(input, ts)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slots[%d]: %s", i, err.Error()))
		}
		incoming = append(incoming, slot)
	}

	byID := make(map[string]models.Slot)
	for _, day := range stored {
		for _, slot := range day {
			byID[slot.ID] = slot
		}
	}
	for _, slot := range incoming {
		if prev, ok := byID[slot.ID]; ok && !prev.CreatedAt.IsZero() {
			slot.CreatedAt = prev.CreatedAt
		}
		byID[slot.ID] = slot
	}

	merged := make(map[string][]models.Slot)
	for _, slot := range byID {
		merged[slot.Date] = append(merged[slot.Date], slot)
	}
	for date, day := range merged {
		merged[date] = calendar.SortByPosition(day)
	}

	if err := s.docs.SaveSlots(ctx, ks, merged); err != nil {
		return nil, storeFailure(err, "save slots")
	}
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventSlotsChanged, ts)
	return merged, nil
}

// Upsert writes one slot, deriving its id from date and position when absent.
func (s *SlotService) Upsert(ctx context.Context, ks repository.Keyspace, input dto.SlotInput) (*models.Slot, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, validationError(err, "invalid slot payload")
	}
	stored, err := s.docs.LoadSlots(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load slots")
	}

	ts := s.now()
	slot, err := slotFromInput(input, ts)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if date, idx, ok := findSlot(stored, slot.ID); ok {
		if !stored[date][idx].CreatedAt.IsZero() {
			slot.CreatedAt = stored[date][idx].CreatedAt
		}
		stored[date] = append(stored[date][:idx], stored[date][idx+1:]...)
	}
	stored[slot.Date] = calendar.SortByPosition(append(stored[slot.Date], slot))

	if err := s.docs.SaveSlots(ctx, ks, stored); err != nil {
		return nil, storeFailure(err, "save slot")
	}
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventSlotsChanged, ts)
	return &slot, nil
}

// Assign places a registered content onto size free positions of a day. Days that
// were never materialized start as an empty grid.
func (s *SlotService) Assign(ctx context.Context, ks repository.Keyspace, req dto.AssignContentRequest) ([]models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid assignment payload")
	}
	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, contents: true})
	if err != nil {
		return nil, err
	}
	content, ok := snap.contents[req.ContentID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("content %s not found", req.ContentID))
	}

	day := snap.slots[req.Date]
	if len(day) == 0 {
		day = calendar.CreateDayBlocks(req.Date)
	}
	day = calendar.SortByPosition(day)
	positions := calendar.GetAvailableBlockPositions(day, req.Size)
	if positions == nil {
		return nil, appErrors.Clone(appErrors.ErrNoCapacity, fmt.Sprintf("only %d free slots on %s", calendar.CountFreeBlocks(day), req.Date))
	}

	placed := calendar.CreateTopicBlocks(req.Date, positions, content)
	for i := range placed {
		for _, existing := range day {
			if existing.Position == placed[i].Position {
				placed[i].CreatedAt = existing.CreatedAt
			}
		}
	}
	snap.slots[req.Date] = calendar.UpdateDayBlocks(day, placed)

	if err := s.docs.SaveSlots(ctx, ks, snap.slots); err != nil {
		return nil, storeFailure(err, "save slots")
	}
	s.logger.Debug("content assigned", zap.String("plan_id", ks.PlanID), zap.String("date", req.Date), zap.Ints("positions", positions))
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventSlotsChanged, s.now())
	return placed, nil
}

// Swap exchanges the content of two slots when the swap guard allows it. A rejected
// swap is reported through the returned validation and leaves the plan untouched.
func (s *SlotService) Swap(ctx context.Context, ks repository.Keyspace, req dto.SwapRequest) (*dto.SwapResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid swap payload")
	}
	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, plan: true})
	if err != nil {
		return nil, err
	}
	dateA, idxA, okA := findSlot(snap.slots, req.SlotA)
	dateB, idxB, okB := findSlot(snap.slots, req.SlotB)
	if !okA || !okB {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
	}
	a, b := snap.slots[dateA][idxA], snap.slots[dateB][idxB]

	validation := calendar.ValidateSwap(a, b, snap.plan, s.now())
	resp := &dto.SwapResponse{Validation: validation}
	if !validation.Allowed {
		return resp, nil
	}

	swappedA, swappedB := calendar.SwapSlots(a, b)
	snap.slots[dateA][idxA] = swappedA
	snap.slots[dateB][idxB] = swappedB
	if err := s.docs.SaveSlots(ctx, ks, snap.slots); err != nil {
		return nil, storeFailure(err, "save slots")
	}
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventSlotsChanged, swappedA.UpdatedAt)
	resp.SlotA, resp.SlotB = &swappedA, &swappedB
	return resp, nil
}

// CompleteWizard materializes the whole plan range and stores the wizard settings.
// Existing slots of the plan are replaced.
func (s *SlotService) CompleteWizard(ctx context.Context, ks repository.Keyspace, req dto.WizardRequest) (map[string][]models.Slot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid wizard payload")
	}
	if err := validateWeights(req.RechtsgebieteGewichtung); err != nil {
		return nil, err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}

	week := calendar.WeekStructure{}
	for _, day := range req.LearningDays {
		week[time.Weekday(day)] = true
	}
	slots := calendar.GenerateWizardSlots(start, end, week, req.BlocksPerDay)

	plan, err := s.docs.LoadPlan(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load plan")
	}
	if plan == nil {
		plan = &models.PlanMetadata{ID: ks.PlanID, Verteilungsmodus: models.VerteilungGemischt}
	}
	applyPlanFields(plan, req.Name, req.StartDate, req.EndDate, req.BlocksPerDay, req.RechtsgebieteGewichtung, req.Verteilungsmodus)
	ts := s.now()
	plan.UpdatedAt = ts

	if err := s.docs.SaveSlots(ctx, ks, slots); err != nil {
		return nil, storeFailure(err, "save slots")
	}
	if err := s.docs.SavePlan(ctx, ks, plan); err != nil {
		return nil, storeFailure(err, "save plan")
	}
	s.logger.Info("wizard completed", zap.String("plan_id", ks.PlanID), zap.Int("days", len(slots)))
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventUpdated, ts)
	return slots, nil
}

// slotFromInput fills every optional field once, so stored slots never carry
// unset statuses or nil task lists. A status that contradicts the content reference
// or the block type is rejected: only a slot without content may be empty.
func slotFromInput(input dto.SlotInput, ts time.Time) (models.Slot, error) {
	slot := calendar.CreateEmptyBlock(input.Date, input.Position)
	slot.CreatedAt, slot.UpdatedAt = ts, ts
	if input.ID != "" {
		slot.ID = input.ID
	}
	if input.ContentID != nil && *input.ContentID != "" {
		slot.ContentID = input.ContentID
	}
	slot.BlockType = models.BlockType(input.BlockType)
	slot.IsLocked = input.IsLocked
	if input.IsLocked {
		slot.LockedAt = &ts
	}
	if input.Tasks != nil {
		slot.Tasks = input.Tasks
	}
	slot.GroupID = input.GroupID
	slot.GroupSize = input.GroupSize
	slot.GroupIndex = input.GroupIndex
	slot.Completed = input.Completed
	slot.Rechtsgebiet = input.Rechtsgebiet
	slot.ThemeID = input.ThemeID
	slot.Title = input.Title

	switch {
	case slot.BlockType == models.BlockTypeFree:
		slot.Status = models.SlotStatusFree
	case slot.ContentID != nil:
		slot.Status = models.SlotStatusTopic
	case input.Status != "":
		slot.Status = models.SlotStatus(input.Status)
	}
	if input.Status != "" && models.SlotStatus(input.Status) != slot.Status {
		return models.Slot{}, fmt.Errorf("status %q contradicts %s", input.Status, slotStateReason(slot))
	}
	if slot.Status == models.SlotStatusFree && slot.ContentID != nil {
		return models.Slot{}, fmt.Errorf("a free block cannot reference content %s", *slot.ContentID)
	}
	return slot, nil
}

func slotStateReason(slot models.Slot) string {
	if slot.BlockType == models.BlockTypeFree {
		return "blockType free"
	}
	return "contentId " + *slot.ContentID
}
