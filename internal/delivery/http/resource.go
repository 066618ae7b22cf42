package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/samber/mo"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/pkg/logger"
)

// Service is the entity contract a ResourceHandler serves.
// *service.CRUD satisfies it.
type Service[T domain.Entity] interface {
	Entity() string
	Create(ctx context.Context, rec T) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, rec T) (mo.Option[T], error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Messages are the fixed client-facing texts for one entity
type Messages struct {
	Empty        string
	NotFound     string
	Duplicate    string
	NoSuch       string
	CreateFailed string
	GetFailed    string
	ListFailed   string
	UpdateFailed string
	DeleteFailed string
}

// Aliases are legacy paths kept next to the canonical ones
type Aliases struct {
	All    string
	ByID   string
	Create string
}

// Resource describes where and how an entity is exposed
type Resource struct {
	Prefix   string
	Messages Messages
	Aliases  Aliases
}

// ResourceHandler serves the CRUD endpoints of one entity
type ResourceHandler[T domain.Entity] struct {
	resource Resource
	service  Service[T]
	metrics  *Metrics
}

// NewResourceHandler creates a handler for svc under resource
func NewResourceHandler[T domain.Entity](resource Resource, svc Service[T], metrics *Metrics) *ResourceHandler[T] {
	return &ResourceHandler[T]{resource: resource, service: svc, metrics: metrics}
}

// RegisterRoutes mounts the canonical routes and any aliases on router
func (h *ResourceHandler[T]) RegisterRoutes(router *mux.Router) {
	p := h.resource.Prefix

	h.handle(router, p+"/all", h.GetAll, http.MethodGet)
	h.handle(router, p+"/by-id/{id}", h.GetByID, http.MethodGet)
	h.handle(router, p+"/create", h.Create, http.MethodPost)
	h.handle(router, p+"/update", h.Update, http.MethodPut)
	h.handle(router, p+"/delete/{id}", h.Delete, http.MethodDelete)

	if a := h.resource.Aliases; a != (Aliases{}) {
		if a.All != "" {
			h.handle(router, a.All, h.GetAll, http.MethodGet)
		}
		if a.ByID != "" {
			h.handle(router, a.ByID, h.GetByID, http.MethodGet)
		}
		if a.Create != "" {
			h.handle(router, a.Create, h.Create, http.MethodPost)
		}
	}
}

func (h *ResourceHandler[T]) handle(router *mux.Router, path string, fn http.HandlerFunc, method string) {
	router.HandleFunc(path, h.metrics.Wrap(path, fn)).Methods(method)
}

// GetAll handles GET <prefix>/all
func (h *ResourceHandler[T]) GetAll(w http.ResponseWriter, r *http.Request) {
	msgs := h.resource.Messages

	records, err := h.service.GetAll(r.Context())
	if err != nil {
		respondFailure(w, r, err, msgs.NotFound, msgs.Duplicate, msgs.ListFailed)
		return
	}
	h.metrics.SetRecords(h.service.Entity(), len(records))
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, msgs.Empty)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetByID handles GET <prefix>/by-id/{id}
func (h *ResourceHandler[T]) GetByID(w http.ResponseWriter, r *http.Request) {
	msgs := h.resource.Messages

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondFailure(w, r, err, msgs.NotFound, msgs.Duplicate, msgs.GetFailed)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// Create handles POST <prefix>/create
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	msgs := h.resource.Messages

	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), rec)
	if err != nil {
		respondFailure(w, r, err, msgs.NotFound, msgs.Duplicate, msgs.CreateFailed)
		return
	}

	logger.Info(r.Context()).
		Str("entity", h.service.Entity()).
		Int64("id", created.PrimaryKey()).
		Msg("Entity created")

	w.Header().Set("Location", h.resource.Prefix+"/all")
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT <prefix>/update
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	msgs := h.resource.Messages

	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(r.Context(), rec)
	if err != nil {
		respondFailure(w, r, err, msgs.NotFound, msgs.Duplicate, msgs.UpdateFailed)
		return
	}

	updated, ok := result.Get()
	if !ok {
		respondError(w, http.StatusNotFound, msgs.NotFound)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE <prefix>/delete/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	msgs := h.resource.Messages

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	removed, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondFailure(w, r, err, msgs.NoSuch, msgs.Duplicate, msgs.DeleteFailed)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, msgs.NoSuch)
		return
	}

	logger.Info(r.Context()).
		Str("entity", h.service.Entity()).
		Int64("id", id).
		Msg("Entity deleted")

	respondJSON(w, http.StatusOK, true)
}

func (h *ResourceHandler[T]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid "+h.service.Entity()+" ID")
		return 0, false
	}
	return id, true
}
