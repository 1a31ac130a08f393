package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/models"
)

// RedisPlanEvents fans plan change notifications out to every API instance over a
// Redis pub/sub channel.
type RedisPlanEvents struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisPlanEvents constructs the bus.
func NewRedisPlanEvents(client *redis.Client, channel string, logger *zap.Logger) *RedisPlanEvents {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPlanEvents{client: client, channel: channel, logger: logger}
}

// Publish sends event to all subscribers.
func (b *RedisPlanEvents) Publish(ctx context.Context, event models.PlanEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal plan event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish plan event: %w", err)
	}
	return nil
}

// Subscribe delivers events to onEvent until ctx is cancelled. It returns once the
// subscription is confirmed; delivery runs in its own goroutine.
func (b *RedisPlanEvents) Subscribe(ctx context.Context, onEvent func(models.PlanEvent)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok || msg == nil {
					return
				}
				var event models.PlanEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.Warn("bad plan event payload", zap.Error(err))
					continue
				}
				onEvent(event)
			}
		}
	}()
	return nil
}

// LocalPlanEvents is the single-process bus used when Redis is not configured.
type LocalPlanEvents struct {
	mu   sync.RWMutex
	subs []func(models.PlanEvent)
}

// NewLocalPlanEvents constructs an in-process bus.
func NewLocalPlanEvents() *LocalPlanEvents {
	return &LocalPlanEvents{}
}

// Publish calls every subscriber synchronously.
func (b *LocalPlanEvents) Publish(_ context.Context, event models.PlanEvent) error {
	b.mu.RLock()
	subs := append([]func(models.PlanEvent){}, b.subs...)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(event)
	}
	return nil
}

// Subscribe registers onEvent until ctx is cancelled.
func (b *LocalPlanEvents) Subscribe(ctx context.Context, onEvent func(models.PlanEvent)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	b.mu.Lock()
	b.subs = append(b.subs, onEvent)
	idx := len(b.subs) - 1
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if idx < len(b.subs) {
			b.subs[idx] = func(models.PlanEvent) {}
		}
	}()
	return nil
}
