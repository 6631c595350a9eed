package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/PiotrUrb/gesture-recognition-system/internal/control"
	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// ModeController is the slice of the pipeline the mode route needs.
// The app implements it with its own locking around the controller.
type ModeController interface {
	Mode() control.Mode
	SetMode(control.Mode) error
}

// ModeHandler reads and switches the operating mode. Accepted switches
// are persisted to settings so the daemon restarts in the same mode.
type ModeHandler struct {
	modes ModeController
	store *store.Store
}

// NewModeHandler creates a ModeHandler. The store may be nil; the mode
// is then not persisted across restarts.
func NewModeHandler(modes ModeController, s *store.Store) *ModeHandler {
	return &ModeHandler{modes: modes, store: s}
}

type modeResponse struct {
	Mode string `json:"mode"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

// ServeHTTP handles GET and POST on /api/mode.
func (h *ModeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, modeResponse{Mode: string(h.modes.Mode())})
	case http.MethodPost:
		h.set(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ModeHandler) set(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mode := control.Mode(req.Mode)
	if err := h.modes.SetMode(mode); err != nil {
		if errors.Is(err, control.ErrInvalidMode) {
			writeError(w, http.StatusBadRequest, "Invalid mode")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to set mode")
		return
	}

	if h.store != nil {
		if err := h.store.Settings().Set(store.SettingMode, string(mode)); err != nil {
			log.Printf("persist mode: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, modeResponse{Mode: string(mode)})
}
