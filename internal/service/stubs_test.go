package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/dto"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
)

var fixedNow = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

var testKS = repository.Keyspace{UserID: "user-1", PlanID: "plan-1"}

type planDocsStub struct {
	mu       sync.Mutex
	slots    map[string][]models.Slot
	contents map[string]models.Content
	plan     *models.PlanMetadata
	err      error
	saveErr  error
	saves    int
}

func newPlanDocsStub() *planDocsStub {
	return &planDocsStub{slots: map[string][]models.Slot{}, contents: map[string]models.Content{}}
}

func (s *planDocsStub) LoadSlots(context.Context, repository.Keyspace) (map[string][]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string][]models.Slot, len(s.slots))
	for date, day := range s.slots {
		out[date] = append([]models.Slot(nil), day...)
	}
	return out, nil
}

func (s *planDocsStub) SaveSlots(_ context.Context, _ repository.Keyspace, slots map[string][]models.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.slots = slots
	return nil
}

func (s *planDocsStub) LoadContents(context.Context, repository.Keyspace) (map[string]models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]models.Content, len(s.contents))
	for id, c := range s.contents {
		out[id] = c
	}
	return out, nil
}

func (s *planDocsStub) SaveContents(_ context.Context, _ repository.Keyspace, contents map[string]models.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.contents = contents
	return nil
}

func (s *planDocsStub) LoadPlan(context.Context, repository.Keyspace) (*models.PlanMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.plan == nil {
		return nil, nil
	}
	plan := *s.plan
	return &plan, nil
}

func (s *planDocsStub) SavePlan(_ context.Context, _ repository.Keyspace, plan *models.PlanMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.plan = plan
	return nil
}

type eventsStub struct {
	events []models.PlanEvent
	err    error
}

func (e *eventsStub) Publish(_ context.Context, event models.PlanEvent) error {
	e.events = append(e.events, event)
	return e.err
}

type ruleCacheStub struct {
	entries       map[string]interface{}
	invalidated   []string
	invalidateErr error
}

func newRuleCacheStub() *ruleCacheStub {
	return &ruleCacheStub{entries: map[string]interface{}{}}
}

func (c *ruleCacheStub) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	value, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	report, ok := value.(*dto.ViolationReport)
	target, okDest := dest.(*dto.ViolationReport)
	if !ok || !okDest {
		return false, nil
	}
	*target = *report
	return true, nil
}

func (c *ruleCacheStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *ruleCacheStub) Invalidate(_ context.Context, pattern string) error {
	c.invalidated = append(c.invalidated, pattern)
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	suffix := strings.TrimPrefix(pattern, "*")
	for key := range c.entries {
		if strings.HasSuffix(key, suffix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// filled returns a content-bearing slot.
func filled(date string, position int, area string) models.Slot {
	slot := calendar.CreateEmptyBlock(date, position)
	cid := fmt.Sprintf("%s-%s-%d", area, date, position)
	slot.ContentID = &cid
	slot.Status = models.SlotStatusTopic
	slot.Rechtsgebiet = area
	return slot
}

func fixedClock() time.Time { return fixedNow }
