// Package api provides the HTTP handlers behind the daemon's REST routes.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// GestureHandler serves the gesture catalog.
type GestureHandler struct {
	store *store.Store
}

// NewGestureHandler creates a GestureHandler over the given store.
func NewGestureHandler(s *store.Store) *GestureHandler {
	return &GestureHandler{store: s}
}

// ServeHTTP routes /api/gestures and /api/gestures/{name}.
func (h *GestureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/gestures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.list(w, r)
		return
	}

	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	h.update(w, r, path)
}

type updateGestureRequest struct {
	Enabled *bool   `json:"enabled"`
	Action  *string `json:"action"`
}

type listGesturesResponse struct {
	Gestures []*store.Gesture `json:"gestures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/gestures.
func (h *GestureHandler) list(w http.ResponseWriter, r *http.Request) {
	gestures, err := h.store.Gestures().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list gestures")
		return
	}
	if gestures == nil {
		gestures = []*store.Gesture{}
	}
	writeJSON(w, http.StatusOK, listGesturesResponse{Gestures: gestures})
}

// update handles PUT /api/gestures/{name}. The body may carry an
// enabled flag, an action rebinding, or both.
func (h *GestureHandler) update(w http.ResponseWriter, r *http.Request, name string) {
	var req updateGestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Enabled == nil && req.Action == nil {
		writeError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	repo := h.store.Gestures()

	if req.Enabled != nil {
		if err := repo.SetEnabled(name, *req.Enabled); err != nil {
			h.updateError(w, name, err)
			return
		}
	}
	if req.Action != nil {
		if err := repo.SetAction(name, *req.Action); err != nil {
			h.updateError(w, name, err)
			return
		}
	}

	gesture, err := repo.GetByName(name)
	if err != nil {
		h.updateError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, gesture)
}

func (h *GestureHandler) updateError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Gesture not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to update gesture")
}
