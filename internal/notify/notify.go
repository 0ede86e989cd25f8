// Package notify publishes character change notifications on the
// rpg-toolkit event bus and lets observers subscribe with an explicit
// lifetime.
package notify

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Notification types
const (
	EventItemAdded         = "inventory.item_added"
	EventItemRemoved       = "inventory.item_removed"
	EventItemMoved         = "inventory.item_moved"
	EventBulkStored        = "inventory.bulk_stored"
	EventStatsRecalculated = "stats.recalculated"
	EventEquipmentChanged  = "equipment.changed"
	EventLevelUp           = "progression.level_up"
)

// payloadKey is the event context key holding the Payload
const payloadKey = "payload"

// Payload carries the data of one notification
type Payload map[string]any

// Notifier receives change notifications. Delivery is best effort; a
// notifier never fails the mutation that triggered it.
type Notifier interface {
	Notify(eventType string, payload Payload)
}

// Discard is a Notifier that drops everything
type Discard struct{}

// Notify implements Notifier
func (Discard) Notify(string, Payload) {}

// Notification is what a subscriber receives
type Notification struct {
	Type     string
	SourceID string
	Payload  Payload
}

// Value returns a typed payload value
func Value[T any](n Notification, key string) (T, bool) {
	var zero T
	raw, ok := n.Payload[key]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// HandlerFunc handles one notification
type HandlerFunc func(ctx context.Context, n Notification) error

// Config holds the dependencies for a Publisher
type Config struct {
	EventBus events.EventBus
	// Source is the entity every notification is attributed to
	Source core.Entity
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// Publisher turns notifications into rpg-toolkit game events
type Publisher struct {
	bus    events.EventBus
	source core.Entity
}

// NewPublisher creates a publisher on the given bus
func NewPublisher(cfg *Config) (*Publisher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Publisher{
		bus:    cfg.EventBus,
		source: cfg.Source,
	}, nil
}

// Publish sends one notification on the bus
func (p *Publisher) Publish(ctx context.Context, eventType string, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}

	event := events.NewGameEvent(eventType, p.source, nil)
	event.Context().Set(payloadKey, payload)

	if err := p.bus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return nil
}

// Notify implements Notifier; publish failures are logged
func (p *Publisher) Notify(eventType string, payload Payload) {
	if err := p.Publish(context.Background(), eventType, payload); err != nil {
		slog.Warn("notification dropped",
			"event_type", eventType,
			"source_id", p.source.GetID(),
			"error", err)
	}
}

// Subscribe registers a handler for one notification type. Cancel the
// returned subscription to stop receiving.
func (p *Publisher) Subscribe(eventType string, handler HandlerFunc) *Subscription {
	id := p.bus.SubscribeFunc(eventType, 0, func(ctx context.Context, event events.Event) error {
		n := Notification{Type: event.Type()}
		if src := event.Source(); src != nil {
			n.SourceID = src.GetID()
		}
		if raw, ok := event.Context().Get(payloadKey); ok {
			if payload, ok := raw.(Payload); ok {
				n.Payload = payload
			}
		}
		return handler(ctx, n)
	})

	return &Subscription{id: id, eventType: eventType, bus: p.bus}
}

// Subscription is a registered handler
type Subscription struct {
	id        string
	eventType string
	bus       events.EventBus
	cancelled bool
}

// ID returns the bus subscription id
func (s *Subscription) ID() string {
	return s.id
}

// Cancel unregisters the handler; cancelling twice is a no-op
func (s *Subscription) Cancel() error {
	if s.cancelled {
		return nil
	}
	if err := s.bus.Unsubscribe(s.id); err != nil {
		return errors.Wrapf(err, "failed to unsubscribe from %s", s.eventType)
	}
	s.cancelled = true
	return nil
}
