package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
)

// MigrationService imports slots written in the old embedded-content format.
type MigrationService struct {
	docs      planDocuments
	events    planEventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewMigrationService constructs a MigrationService.
func NewMigrationService(docs planDocuments, events planEventPublisher, validate *validator.Validate, logger *zap.Logger) *MigrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationService{
		docs:      docs,
		events:    events,
		validator: registerPlanValidations(validate),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Migrate normalizes legacy blocks into contents and slots. Migrated dates replace
// the stored slots of those dates; contents are merged, migrated ones winning.
func (s *MigrationService) Migrate(ctx context.Context, ks repository.Keyspace, req dto.MigrateRequest) (*dto.MigrateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid migration payload")
	}
	result := calendar.MigrateLegacyData(req.Blocks)

	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, contents: true})
	if err != nil {
		return nil, err
	}
	for id, content := range result.ContentsByID {
		snap.contents[id] = content
	}
	slotCount := 0
	for date, slots := range result.SlotsByDate {
		snap.slots[date] = calendar.SortByPosition(slots)
		slotCount += len(slots)
	}

	if err := s.docs.SaveContents(ctx, ks, snap.contents); err != nil {
		return nil, storeFailure(err, "save migrated contents")
	}
	if err := s.docs.SaveSlots(ctx, ks, snap.slots); err != nil {
		return nil, storeFailure(err, "save migrated slots")
	}
	s.logger.Info("legacy plan migrated",
		zap.String("plan_id", ks.PlanID),
		zap.Int("contents", len(result.ContentsByID)),
		zap.Int("slots", slotCount))
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventSlotsChanged, s.now())

	return &dto.MigrateResponse{
		Contents: len(result.ContentsByID),
		Slots:    slotCount,
		Dates:    len(result.SlotsByDate),
	}, nil
}
