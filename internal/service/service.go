package service

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/internal/events"
	"github.com/tair/bekawave/pkg/logger"
)

// Repository is the storage contract the service needs for one entity.
// *repository.Repository satisfies it.
type Repository[T domain.Entity] interface {
	Entity() string
	Create(ctx context.Context, rec T) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, rec T) (mo.Option[T], error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// Policy selects how an entity reacts to writes that match no row.
type Policy struct {
	// UpdateMissingIsError turns an update of an unknown id into ErrNotFound
	// instead of an absent result.
	UpdateMissingIsError bool
	// DeleteChecksExistence makes delete of an unknown id ErrNotFound
	// instead of a false result.
	DeleteChecksExistence bool
}

var (
	// StrictPolicy reports unknown ids as ErrNotFound on update and delete
	StrictPolicy = Policy{UpdateMissingIsError: true, DeleteChecksExistence: true}
	// LenientPolicy reports unknown ids as absent / false
	LenientPolicy = Policy{}
)

// CRUD validates records, applies the entity policy and announces every
// successful write.
type CRUD[T domain.Entity] struct {
	repo      Repository[T]
	policy    Policy
	publisher events.Publisher
}

// NewCRUD creates a CRUD service over repo
func NewCRUD[T domain.Entity](repo Repository[T], policy Policy, publisher events.Publisher) *CRUD[T] {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CRUD[T]{repo: repo, policy: policy, publisher: publisher}
}

// Entity returns the managed entity name
func (s *CRUD[T]) Entity() string {
	return s.repo.Entity()
}

// Create validates and stores rec. Any id in rec is ignored.
func (s *CRUD[T]) Create(ctx context.Context, rec T) (T, error) {
	if err := rec.Validate(); err != nil {
		var zero T
		return zero, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		var zero T
		return zero, err
	}

	s.publish(ctx, events.ActionCreated, created.PrimaryKey())
	return created, nil
}

// Get returns the record with id
func (s *CRUD[T]) Get(ctx context.Context, id int64) (T, error) {
	if id <= 0 {
		var zero T
		return zero, domain.NewValidationError("id", "must be positive")
	}
	return s.repo.Get(ctx, id)
}

// GetAll returns every record; an empty slice when there are none.
func (s *CRUD[T]) GetAll(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

// Update replaces the record identified by rec's id.
func (s *CRUD[T]) Update(ctx context.Context, rec T) (mo.Option[T], error) {
	id := rec.PrimaryKey()
	if id <= 0 {
		return mo.None[T](), domain.NewValidationError("id", "must be positive")
	}
	if err := rec.Validate(); err != nil {
		return mo.None[T](), err
	}

	updated, err := s.repo.Update(ctx, rec)
	if err != nil {
		return mo.None[T](), err
	}
	if updated.IsAbsent() {
		if s.policy.UpdateMissingIsError {
			return mo.None[T](), fmt.Errorf("%s %d: %w", s.repo.Entity(), id, domain.ErrNotFound)
		}
		return updated, nil
	}

	s.publish(ctx, events.ActionUpdated, id)
	return updated, nil
}

// Delete removes the record with id and reports whether one was removed.
func (s *CRUD[T]) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, domain.NewValidationError("id", "must be positive")
	}

	if s.policy.DeleteChecksExistence {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, fmt.Errorf("%s %d: %w", s.repo.Entity(), id, domain.ErrNotFound)
		}
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.publish(ctx, events.ActionDeleted, id)
	}
	return removed, nil
}

// Exists reports whether a record with id is stored
func (s *CRUD[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *CRUD[T]) publish(ctx context.Context, action events.Action, id int64) {
	event := events.NewEntityChanged(s.repo.Entity(), action, id)
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Int64("entity_id", id).
			Msg("Failed to publish entity change")
	}
}
