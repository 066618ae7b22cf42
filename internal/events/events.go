package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of write that changed an entity
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// DefaultTopic receives every entity change when no topic is configured
const DefaultTopic = "bekawave-entity-changes"

// EntityChanged is emitted after a successful create, update or delete
type EntityChanged struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Entity    string    `json:"entity"`
	Action    Action    `json:"action"`
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntityChanged stamps a new event for entity id
func NewEntityChanged(entity string, action Action, id int64) EntityChanged {
	return EntityChanged{
		EventID:   uuid.NewString(),
		EventType: strings.ReplaceAll(entity, " ", "_") + "." + string(action),
		Entity:    entity,
		Action:    action,
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers entity change events
type Publisher interface {
	Publish(ctx context.Context, event EntityChanged) error
}


// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, EntityChanged) error { return nil }

type multi []Publisher

// Multi fans an event out to every publisher; all are attempted even when
// one fails.
func Multi(publishers ...Publisher) Publisher {
	return multi(publishers)
}

func (m multi) Publish(ctx context.Context, event EntityChanged) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
