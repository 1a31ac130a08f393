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
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

type ruleCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// RuleService runs the rule engine against stored plans. Violation reports are cached
// until a plan event for the plan arrives.
type RuleService struct {
	docs      planDocuments
	events    planEventPublisher
	cache     ruleCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewRuleService constructs a RuleService. cache and metrics may be nil.
func NewRuleService(docs planDocuments, events planEventPublisher, cache ruleCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *RuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleService{
		docs:      docs,
		events:    events,
		cache:     cache,
		metrics:   metrics,
		validator: registerPlanValidations(validate),
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Violations returns the advisory violation report of a plan.
func (s *RuleService) Violations(ctx context.Context, ks repository.Keyspace) (*dto.ViolationReport, error) {
	key := ViolationsKey(ks.UserID, ks.PlanID)
	if s.cache != nil {
		var cached dto.ViolationReport
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			cached.Cached = true
			return &cached, nil
		}
	}

	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, plan: true})
	if err != nil {
		return nil, err
	}
	violations := calendar.CheckRuleViolations(snap.slots, snap.plan)
	s.metrics.RecordViolations(violations)
	report := &dto.ViolationReport{
		PlanID:      ks.PlanID,
		Mode:        string(snap.plan.Mode()),
		Violations:  violations,
		GeneratedAt: s.now(),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, report, s.cacheTTL)
	}
	return report, nil
}

// Redistribute computes a redistribution from req.FromDate on. With Apply set the
// result is persisted; otherwise it is only a preview.
func (s *RuleService) Redistribute(ctx context.Context, ks repository.Keyspace, req dto.RedistributeRequest) (*dto.RedistributeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid redistribution payload")
	}
	from := s.now()
	if req.FromDate != "" {
		parsed, err := parseDate(req.FromDate)
		if err != nil {
			return nil, err
		}
		from = parsed
	}

	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, plan: true})
	if err != nil {
		return nil, err
	}
	result := calendar.RedistributeBlocks(snap.slots, snap.plan, from)
	resp := &dto.RedistributeResponse{
		SlotsByDate: result.SlotsByDate,
		Unplaced:    result.Unplaced,
		Moved:       result.Moved,
		Violations:  calendar.CheckRuleViolations(result.SlotsByDate, snap.plan),
	}
	if len(result.Unplaced) > 0 {
		s.logger.Warn("redistribution left entries unplaced",
			zap.String("plan_id", ks.PlanID), zap.Int("unplaced", len(result.Unplaced)))
	}

	if req.Apply {
		if err := s.docs.SaveSlots(ctx, ks, result.SlotsByDate); err != nil {
			return nil, storeFailure(err, "save redistributed slots")
		}
		resp.Applied = true
		notifyPlanChange(ctx, s.events, s.logger, ks, models.PlanEventSlotsChanged, s.now())
	}
	s.metrics.RecordRedistribution(snap.plan.Mode(), req.Apply, len(result.Unplaced))
	return resp, nil
}

// ValidateSwap runs the swap guard for two stored slots without changing anything.
func (s *RuleService) ValidateSwap(ctx context.Context, ks repository.Keyspace, req dto.SwapRequest) (*models.SwapValidation, error) {
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
	result := calendar.ValidateSwap(snap.slots[dateA][idxA], snap.slots[dateB][idxB], snap.plan, s.now())
	return &result, nil
}

// HandlePlanEvent drops cached reports of the plan named by event. Failures are
// logged only.
func (s *RuleService) HandlePlanEvent(event models.PlanEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.ProcessPlanEvent(ctx, event); err != nil {
		s.logger.Warn("rule cache invalidation failed", zap.String("plan_id", event.PlanID), zap.Error(err))
	}
}

// ProcessPlanEvent is HandlePlanEvent for callers that retry on error.
func (s *RuleService) ProcessPlanEvent(ctx context.Context, event models.PlanEvent) error {
	s.metrics.RecordPlanEvent(event.Kind)
	if s.cache == nil || event.PlanID == "" {
		return nil
	}
	return s.cache.Invalidate(ctx, PlanPattern(event.PlanID))
}
