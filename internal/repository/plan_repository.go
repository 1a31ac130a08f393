package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// KVStore is the storage collaborator every backend satisfies.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// StoreObserver receives the latency of each store round trip.
type StoreObserver interface {
	ObserveStoreOperation(op string, duration time.Duration, err error)
}

// PlanRepository reads and writes the three JSON documents that make up a plan.
// Absent documents read as empty values, never as errors.
type PlanRepository struct {
	store    KVStore
	observer StoreObserver
}

// NewPlanRepository constructs the repository. observer may be nil.
func NewPlanRepository(store KVStore, observer StoreObserver) *PlanRepository {
	return &PlanRepository{store: store, observer: observer}
}

// LoadSlots returns the date keyed slot map.
func (r *PlanRepository) LoadSlots(ctx context.Context, ks Keyspace) (map[string][]models.Slot, error) {
	slots := map[string][]models.Slot{}
	if _, err := r.load(ctx, ks.Slots(), &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SaveSlots overwrites the slot map.
func (r *PlanRepository) SaveSlots(ctx context.Context, ks Keyspace, slots map[string][]models.Slot) error {
	return r.save(ctx, ks.Slots(), slots)
}

// LoadContents returns the content registry keyed by content id.
func (r *PlanRepository) LoadContents(ctx context.Context, ks Keyspace) (map[string]models.Content, error) {
	contents := map[string]models.Content{}
	if _, err := r.load(ctx, ks.Contents(), &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// SaveContents overwrites the content registry.
func (r *PlanRepository) SaveContents(ctx context.Context, ks Keyspace, contents map[string]models.Content) error {
	return r.save(ctx, ks.Contents(), contents)
}

// LoadPlan returns plan metadata, or nil when none was stored yet.
func (r *PlanRepository) LoadPlan(ctx context.Context, ks Keyspace) (*models.PlanMetadata, error) {
	var plan models.PlanMetadata
	found, err := r.load(ctx, ks.Plan(), &plan)
	if err != nil || !found {
		return nil, err
	}
	return &plan, nil
}

// SavePlan overwrites plan metadata.
func (r *PlanRepository) SavePlan(ctx context.Context, ks Keyspace, plan *models.PlanMetadata) error {
	return r.save(ctx, ks.Plan(), plan)
}

func (r *PlanRepository) load(ctx context.Context, key string, dest interface{}) (bool, error) {
	start := time.Now()
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		r.observe("get", start, nil)
		return false, nil
	}
	r.observe("get", start, err)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *PlanRepository) save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	start := time.Now()
	err = r.store.Set(ctx, key, raw)
	r.observe("set", start, err)
	return err
}

func (r *PlanRepository) observe(op string, start time.Time, err error) {
	if r.observer != nil {
		r.observer.ObserveStoreOperation(op, time.Since(start), err)
	}
}
