package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/arcaives/internal/logging"
	"github.com/dmitrijs2005/arcaives/internal/models"
)

// tableService is what a table endpoint needs from its service.
type tableService[T any, P any] interface {
	List(ctx context.Context, q models.Query) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, row T) (*T, error)
	Update(ctx context.Context, id string, p P) (*T, error)
	Delete(ctx context.Context, id string) error
}

// tableEndpoints is the type-erased form the router dispatches to.
type tableEndpoints interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// TableHandler serves one table. T is the row type, P its patch type.
type TableHandler[T any, P any] struct {
	svc tableService[T, P]
	log logging.Logger
}

func NewTableHandler[T any, P any](svc tableService[T, P], logger logging.Logger) *TableHandler[T, P] {
	return &TableHandler[T, P]{svc: svc, log: logger}
}

// List handles GET /rest/v1/{table}.
func (h *TableHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	q, err := models.ParseQuery(r.URL.Query())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rows, err := h.svc.List(r.Context(), q)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Get handles GET /rest/v1/{table}/{id}.
func (h *TableHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Create handles POST /rest/v1/{table}.
func (h *TableHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	var row T
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Create(r.Context(), row)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// Update handles PATCH /rest/v1/{table}/{id}.
func (h *TableHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	var p P
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Update(r.Context(), r.PathValue("id"), p)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Delete handles DELETE /rest/v1/{table}/{id}.
func (h *TableHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
