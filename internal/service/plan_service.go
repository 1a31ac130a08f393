package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

const weightEpsilon = 0.001

// PlanService manages plan metadata, the settings read by the rule engine.
type PlanService struct {
	docs      planDocuments
	events    planEventPublisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPlanService constructs a PlanService.
func NewPlanService(docs planDocuments, events planEventPublisher, validate *validator.Validate, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		docs:      docs,
		events:    events,
		validator: registerPlanValidations(validate),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the stored metadata of a plan.
func (s *PlanService) Get(ctx context.Context, ks repository.Keyspace) (*models.PlanMetadata, error) {
	plan, err := s.docs.LoadPlan(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load plan")
	}
	if plan == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
	}
	return plan, nil
}

// Update merges req into the stored metadata and announces the change. Zero valued
// fields keep their stored value; a supplied weighting replaces the old one.
func (s *PlanService) Update(ctx context.Context, ks repository.Keyspace, req dto.UpdatePlanRequest) (*models.PlanMetadata, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid plan payload")
	}
	if err := validateWeights(req.RechtsgebieteGewichtung); err != nil {
		return nil, err
	}
	if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}

	plan, err := s.docs.LoadPlan(ctx, ks)
	if err != nil {
		return nil, storeFailure(err, "load plan")
	}
	if plan == nil {
		plan = &models.PlanMetadata{ID: ks.PlanID, Verteilungsmodus: models.VerteilungGemischt}
	}
	applyPlanFields(plan, req.Name, req.StartDate, req.EndDate, req.BlocksPerDay, req.RechtsgebieteGewichtung, req.Verteilungsmodus)
	plan.UpdatedAt = s.now()

	if err := s.docs.SavePlan(ctx, ks, plan); err != nil {
		return nil, storeFailure(err, "save plan")
	}
	s.logger.Info("plan updated", zap.String("plan_id", ks.PlanID), zap.String("mode", string(plan.Mode())))
	notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventUpdated, plan.UpdatedAt)
	return plan, nil
}

func applyPlanFields(plan *models.PlanMetadata, name, start, end string, blocksPerDay int, weights map[string]float64, mode string) {
	if name != "" {
		plan.Name = name
	}
	if start != "" {
		plan.StartDate = start
	}
	if end != "" {
		plan.EndDate = end
	}
	if blocksPerDay > 0 {
		plan.BlocksPerDay = blocksPerDay
	}
	if weights != nil {
		plan.RechtsgebieteGewichtung = weights
	}
	if mode != "" {
		plan.Verteilungsmodus = models.Verteilungsmodus(mode)
	}
}

func validateWeights(weights map[string]float64) error {
	total := 0.0
	for _, pct := range weights {
		total += pct
	}
	if total > 100+weightEpsilon {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("rechtsgebieteGewichtung adds up to %.1f%%, at most 100%% allowed", total))
	}
	return nil
}
