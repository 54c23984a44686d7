package api

import (
	"net/http"
)

// StatusProvider returns the status of the running session.
type StatusProvider interface {
	GetStatus() map[string]interface{}
}

// StatusHandler handles status requests.
type StatusHandler struct {
	statusProvider StatusProvider
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(statusProvider StatusProvider) *StatusHandler {
	return &StatusHandler{statusProvider: statusProvider}
}

// HandleStatus handles GET /status requests.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethod)
		return
	}
	if h.statusProvider == nil {
		writeError(w, http.StatusServiceUnavailable, "no_session", ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, h.statusProvider.GetStatus())
}
