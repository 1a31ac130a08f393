package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
)

type planDocuments interface {
	LoadSlots(ctx context.Context, ks repository.Keyspace) (map[string][]models.Slot, error)
	SaveSlots(ctx context.Context, ks repository.Keyspace, slots map[string][]models.Slot) error
	LoadContents(ctx context.Context, ks repository.Keyspace) (map[string]models.Content, error)
	SaveContents(ctx context.Context, ks repository.Keyspace, contents map[string]models.Content) error
	LoadPlan(ctx context.Context, ks repository.Keyspace) (*models.PlanMetadata, error)
	SavePlan(ctx context.Context, ks repository.Keyspace, plan *models.PlanMetadata) error
}

type planEventPublisher interface {
	Publish(ctx context.Context, event models.PlanEvent) error
}

// PlanChangePublisher drops the cached rule reports of a plan before announcing the
// change, so a read on this instance right after a write never sees a report built
// before it. The bus still carries the event to other instances.
type PlanChangePublisher struct {
	events planEventPublisher
	cache  ruleCache
	logger *zap.Logger
}

// NewPlanChangePublisher wraps events. events and cache may be nil.
func NewPlanChangePublisher(events planEventPublisher, cache ruleCache, logger *zap.Logger) *PlanChangePublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanChangePublisher{events: events, cache: cache, logger: logger}
}

// Publish invalidates synchronously, then forwards event.
func (p *PlanChangePublisher) Publish(ctx context.Context, event models.PlanEvent) error {
	if p.cache != nil && event.PlanID != "" {
		if err := p.cache.Invalidate(ctx, PlanPattern(event.PlanID)); err != nil {
			p.logger.Error("rule cache invalidation failed", zap.String("plan_id", event.PlanID), zap.Error(err))
		}
	}
	if p.events == nil {
		return nil
	}
	return p.events.Publish(ctx, event)
}

func storeFailure(err error, action string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+action)
}

// notifyPlanChange publishes kind for ks. Delivery failures are logged only; the
// write that triggered the event has already been persisted.
func notifyPlanChange(ctx context.Context, events planEventPublisher, logger *zap.Logger, ks repository.Keyspace, kind string, now time.Time) {
	if events == nil {
		return
	}
	event := models.PlanEvent{PlanID: ks.PlanID, UserID: ks.UserID, Kind: kind, OccurredAt: now}
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("publish plan event failed", zap.String("plan_id", ks.PlanID), zap.String("kind", kind), zap.Error(err))
	}
}

// planSnapshot is everything the rule engine and session builder read.
type planSnapshot struct {
	slots    map[string][]models.Slot
	contents map[string]models.Content
	plan     *models.PlanMetadata
}

type snapshotParts struct {
	slots, contents, plan bool
}

// loadSnapshot fetches the requested documents concurrently.
func loadSnapshot(ctx context.Context, docs planDocuments, ks repository.Keyspace, parts snapshotParts) (*planSnapshot, error) {
	snap := &planSnapshot{}
	g, gctx := errgroup.WithContext(ctx)
	if parts.slots {
		g.Go(func() error {
			slots, err := docs.LoadSlots(gctx, ks)
			if err != nil {
				return storeFailure(err, "load slots")
			}
			snap.slots = slots
			return nil
		})
	}
	if parts.contents {
		g.Go(func() error {
			contents, err := docs.LoadContents(gctx, ks)
			if err != nil {
				return storeFailure(err, "load contents")
			}
			snap.contents = contents
			return nil
		})
	}
	if parts.plan {
		g.Go(func() error {
			plan, err := docs.LoadPlan(gctx, ks)
			if err != nil {
				return storeFailure(err, "load plan")
			}
			snap.plan = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// findSlot locates a slot by id.
func findSlot(slotsByDate map[string][]models.Slot, id string) (string, int, bool) {
	for date, slots := range slotsByDate {
		for i, slot := range slots {
			if slot.ID == id {
				return date, i, true
			}
		}
	}
	return "", 0, false
}
