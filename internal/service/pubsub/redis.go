package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

const (
	TenantEventsChannel   = "tenancy:tenant_events"
	SecurityEventsChannel = "tenancy:security_events"
)

type TenantEventType string

const (
	TenantEventStatusChanged       TenantEventType = "status_changed"
	TenantEventSubscriptionChanged TenantEventType = "subscription_changed"
)

// TenantEvent announces a directory change so every API instance can drop
// cached entries and pooled connections for the tenant.
type TenantEvent struct {
	Type      TenantEventType     `json:"type"`
	TenantID  uint                `json:"tenant_id"`
	Code      string              `json:"code"`
	Status    domain.TenantStatus `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
}

type RedisPubSub struct {
	client       redis.UniversalClient
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // channel -> subscriber
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client redis.UniversalClient, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

func (ps *RedisPubSub) PublishTenantEvent(ctx context.Context, event *TenantEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return ps.publish(ctx, TenantEventsChannel, event)
}

func (ps *RedisPubSub) PublishSecurityEvent(ctx context.Context, event *domain.SecurityEvent) error {
	return ps.publish(ctx, SecurityEventsChannel, event)
}

func (ps *RedisPubSub) publish(ctx context.Context, channel string, payload any) error {
	message, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s: %w", channel, err)
	}
	if err := ps.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}
	return nil
}

// SubscribeTenantEvents delivers tenant lifecycle events until ctx is done.
func (ps *RedisPubSub) SubscribeTenantEvents(ctx context.Context, callback func(*TenantEvent)) error {
	return ps.subscribe(ctx, TenantEventsChannel, func(payload string) error {
		var event TenantEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return err
		}
		callback(&event)
		return nil
	})
}

// SubscribeSecurityEvents opens a dedicated subscription for one consumer,
// such as a websocket stream. The returned cancel function ends it.
func (ps *RedisPubSub) SubscribeSecurityEvents(ctx context.Context, callback func(*domain.SecurityEvent)) (func(), error) {
	sub := ps.client.Subscribe(ctx, SecurityEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", SecurityEventsChannel, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event domain.SecurityEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					ps.logger.Errorf("Failed to unmarshal security event: %v", err)
					continue
				}
				callback(&event)
			case <-subCtx.Done():
				return
			}
		}
	}()
	return cancel, nil
}

func (ps *RedisPubSub) subscribe(ctx context.Context, channel string, handle func(payload string) error) error {
	ps.subscriberMu.RLock()
	_, exists := ps.subscribers[channel]
	ps.subscriberMu.RUnlock()
	if exists {
		ps.logger.Infof("Already subscribed to channel: %s", channel)
		return nil
	}

	sub := ps.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	ps.subscriberMu.Lock()
	ps.subscribers[channel] = sub
	ps.subscriberMu.Unlock()

	go func() {
		defer func() {
			ps.logger.Infof("Closing subscription for channel: %s", channel)
			ps.Unsubscribe(channel)
		}()

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := handle(msg.Payload); err != nil {
					ps.logger.Errorf("Failed to handle message from channel %s: %v", channel, err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscribed to channel: %s", channel)
	return nil
}

func (ps *RedisPubSub) Unsubscribe(channel string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if sub, exists := ps.subscribers[channel]; exists {
		sub.Close()
		delete(ps.subscribers, channel)
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for channel, sub := range ps.subscribers {
		sub.Close()
		delete(ps.subscribers, channel)
		ps.logger.Infof("Closed subscription for channel: %s", channel)
	}
}
