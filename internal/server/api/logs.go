package api

import (
	"net/http"
	"strconv"

	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

// LogsHandler serves the action audit trail.
type LogsHandler struct {
	store *store.Store
}

// NewLogsHandler creates a LogsHandler over the given store.
func NewLogsHandler(s *store.Store) *LogsHandler {
	return &LogsHandler{store: s}
}

type listLogsResponse struct {
	Logs []*store.ActionLog `json:"logs"`
}

// ServeHTTP handles GET /api/logs?limit=N.
func (h *LogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		if n > maxLogLimit {
			n = maxLogLimit
		}
		limit = n
	}

	logs, err := h.store.ActionLogs().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list logs")
		return
	}
	if logs == nil {
		logs = []*store.ActionLog{}
	}
	writeJSON(w, http.StatusOK, listLogsResponse{Logs: logs})
}
