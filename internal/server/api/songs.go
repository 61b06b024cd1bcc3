// Package api provides the HTTP API handlers for the installation: the song
// library, recorded performances, and live control.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/veena/internal/rhythm"
	"github.com/ayusman/veena/internal/store"
)

// defaultLeadTimeMs is used when a chart is created without a lead time.
const defaultLeadTimeMs = 2000

// SongHandler handles HTTP requests for the song library.
type SongHandler struct {
	store *store.Store
}

// NewSongHandler creates a new SongHandler with the given store.
func NewSongHandler(s *store.Store) *SongHandler {
	return &SongHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SongHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/songs or /api/songs/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/songs")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/songs
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/songs/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createSongRequest struct {
	Title    string            `json:"title"`
	BPM      float64           `json:"bpm"`
	LeadTime int64             `json:"lead_time"`
	Duration int64             `json:"duration"`
	Notes    []rhythm.SongNote `json:"notes"`
}

type songSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	BPM      float64 `json:"bpm"`
	LeadTime int64   `json:"lead_time"`
	Duration int64   `json:"duration"`
}

type listSongsResponse struct {
	Songs []songSummary `json:"songs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toSummary converts a rhythm.Song to a songSummary without its chart.
func toSummary(song *rhythm.Song) songSummary {
	return songSummary{
		ID:       song.ID,
		Title:    song.Title,
		BPM:      song.BPM,
		LeadTime: song.LeadTime,
		Duration: song.Duration,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/songs and returns the library without charts.
func (h *SongHandler) list(w http.ResponseWriter, r *http.Request) {
	songs, err := h.store.Songs().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list songs")
		return
	}

	response := listSongsResponse{
		Songs: make([]songSummary, 0, len(songs)),
	}

	for _, song := range songs {
		response.Songs = append(response.Songs, toSummary(song))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/songs/{id} and returns a song with its full chart.
func (h *SongHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	song, err := h.store.Songs().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Song not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get song")
		return
	}

	if song.Notes == nil {
		song.Notes = []rhythm.SongNote{}
	}
	writeJSON(w, http.StatusOK, song)
}

// create handles POST /api/songs and stores a new chart.
func (h *SongHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	song := &rhythm.Song{
		ID:       uuid.New().String(),
		Title:    req.Title,
		BPM:      req.BPM,
		LeadTime: req.LeadTime,
		Duration: req.Duration,
		Notes:    req.Notes,
	}
	song.SortNotes()

	// Fill in authoring conveniences before validating
	if song.LeadTime == 0 {
		song.LeadTime = defaultLeadTimeMs
	}
	if song.Duration == 0 && len(song.Notes) > 0 {
		song.Duration = song.Notes[len(song.Notes)-1].Time + song.LeadTime
	}

	if err := song.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Songs().Create(song); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create song")
		return
	}

	writeJSON(w, http.StatusCreated, song)
}

// delete handles DELETE /api/songs/{id} and removes a song, its chart, and
// its performances.
func (h *SongHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Songs().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Song not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete song")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
