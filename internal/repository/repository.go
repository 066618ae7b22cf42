package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/samber/mo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/pkg/database"
)

var tracer = otel.Tracer("bekawave-repository")

// Repository issues parameterized SQL for one entity table over a shared
// pool. It never closes or reconfigures the pool.
type Repository[T domain.Entity] struct {
	db    *sql.DB
	table Table[T]
}

// New creates a repository for table backed by db
func New[T domain.Entity](db *sql.DB, table Table[T]) *Repository[T] {
	return &Repository[T]{db: db, table: table}
}

// Entity returns the entity name used in errors, spans and events.
func (r *Repository[T]) Entity() string {
	return r.table.Entity
}

// Create inserts rec and returns the stored row with its generated id. When
// the table has a uniqueness key an existence check runs first; the unique
// index catches anything that slips between the check and the insert.
func (r *Repository[T]) Create(ctx context.Context, rec T) (T, error) {
	ctx, span := r.start(ctx, "Create")
	defer span.End()

	var zero T
	values := r.table.Values(&rec)

	if len(r.table.UniqueKey) > 0 {
		exists, err := r.exists(ctx, r.table.existsByKeySQL(), r.table.keyArgs(values)...)
		if err != nil {
			return zero, r.fail(span, "create", err)
		}
		if exists {
			span.SetAttributes(attribute.Bool("db.duplicate", true))
			return zero, fmt.Errorf("%s: %w", r.table.Entity, domain.ErrDuplicateEntity)
		}
	}

	created, err := r.table.Scan(r.db.QueryRowContext(ctx, r.table.insertSQL(), values...))
	if err != nil {
		return zero, r.fail(span, "create", err)
	}

	span.SetAttributes(attribute.Int64("db.row_id", created.PrimaryKey()))
	return created, nil
}

// Get fetches one row by id
func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	ctx, span := r.start(ctx, "Get", attribute.Int64("db.row_id", id))
	defer span.End()

	found, err := r.table.Scan(r.db.QueryRowContext(ctx, r.table.selectByIDSQL(), id))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", r.table.Entity, id, domain.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, r.fail(span, "get", err)
	}
	return found, nil
}

// GetAll fetches every row in storage order. An empty table yields an empty
// slice, never nil.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	ctx, span := r.start(ctx, "GetAll")
	defer span.End()

	rows, err := r.db.QueryContext(ctx, r.table.selectAllSQL())
	if err != nil {
		return nil, r.fail(span, "get all", err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		rec, err := r.table.Scan(rows)
		if err != nil {
			return nil, r.fail(span, "scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(span, "get all", err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(records)))
	return records, nil
}

// Update replaces every column of the row identified by rec. The result is
// absent when no row has that id.
func (r *Repository[T]) Update(ctx context.Context, rec T) (mo.Option[T], error) {
	ctx, span := r.start(ctx, "Update", attribute.Int64("db.row_id", rec.PrimaryKey()))
	defer span.End()

	args := append(r.table.Values(&rec), rec.PrimaryKey())
	updated, err := r.table.Scan(r.db.QueryRowContext(ctx, r.table.updateSQL(), args...))
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttributes(attribute.Bool("db.matched", false))
		return mo.None[T](), nil
	}
	if err != nil {
		return mo.None[T](), r.fail(span, "update", err)
	}
	return mo.Some(updated), nil
}

// Delete removes the row with id and reports whether one was removed.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.start(ctx, "Delete", attribute.Int64("db.row_id", id))
	defer span.End()

	result, err := r.db.ExecContext(ctx, r.table.deleteSQL(), id)
	if err != nil {
		return false, r.fail(span, "delete", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.fail(span, "delete", err)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", affected))
	return affected > 0, nil
}

// Exists reports whether a row with id is present
func (r *Repository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, span := r.start(ctx, "Exists", attribute.Int64("db.row_id", id))
	defer span.End()

	exists, err := r.exists(ctx, r.table.existsByIDSQL(), id)
	if err != nil {
		return false, r.fail(span, "exists", err)
	}
	return exists, nil
}

func (r *Repository[T]) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository[T]) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", r.table.Name),
		attribute.String("entity", r.table.Entity),
	)
	return tracer.Start(ctx, "repository."+op, trace.WithAttributes(attrs...))
}

// fail classifies a driver error and records it on the span.
func (r *Repository[T]) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, fmt.Sprintf("database error: %v", err))

	if database.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", r.table.Entity, domain.ErrDuplicateEntity)
	}
	return domain.NewStorageError(r.table.Entity, op, err)
}
