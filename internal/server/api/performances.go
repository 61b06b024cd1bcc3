package api

import (
	"net/http"

	"github.com/ayusman/veena/internal/store"
)

// PerformanceHandler handles HTTP requests for recorded performances.
type PerformanceHandler struct {
	store *store.Store
}

// NewPerformanceHandler creates a new PerformanceHandler with the given store.
func NewPerformanceHandler(s *store.Store) *PerformanceHandler {
	return &PerformanceHandler{store: s}
}

type listPerformancesResponse struct {
	Performances []*store.Performance `json:"performances"`
}

// ServeHTTP implements the http.Handler interface. Performances are written
// by the host when a song finishes, so the API surface is read-only.
func (h *PerformanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		perfs []*store.Performance
		err   error
	)
	if songID := r.URL.Query().Get("song_id"); songID != "" {
		perfs, err = h.store.Performances().ListBySong(songID)
	} else {
		perfs, err = h.store.Performances().List()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list performances")
		return
	}

	if perfs == nil {
		perfs = []*store.Performance{}
	}
	writeJSON(w, http.StatusOK, listPerformancesResponse{Performances: perfs})
}
