package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/veena/internal/store"
)

// Status describes the live state of the installation.
type Status struct {
	Experience string `json:"experience"`
	Mode       string `json:"mode"`
	Playing    bool   `json:"playing"`
	SongID     string `json:"song_id,omitempty"`
	SongTitle  string `json:"song_title,omitempty"`
	Score      int    `json:"score"`
	Combo      int    `json:"combo"`
}

// Controller is the part of the host application the control API drives.
type Controller interface {
	SetExperience(name string) error
	PlaySong(id string) error
	StopSong()
	Status() Status
}

// ControlHandler handles live control of the installation: switching the
// experience, starting and stopping songs, and reporting status.
type ControlHandler struct {
	controller Controller
}

// NewControlHandler creates a new ControlHandler driving the given controller.
func NewControlHandler(c Controller) *ControlHandler {
	return &ControlHandler{controller: c}
}

type controlRequest struct {
	Command    string `json:"command"`
	Experience string `json:"experience"`
	SongID     string `json:"song_id"`
}

// ServeHTTP implements the http.Handler interface for /api/control and
// /api/status.
func (h *ControlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/status") {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, h.controller.Status())
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.control(w, r)
}

// control handles POST /api/control commands.
func (h *ControlHandler) control(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Command {
	case "experience":
		if err := h.controller.SetExperience(req.Experience); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "play":
		if req.SongID == "" {
			writeError(w, http.StatusBadRequest, "song_id is required")
			return
		}
		if err := h.controller.PlaySong(req.SongID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Song not found")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case "stop":
		h.controller.StopSong()
	default:
		writeError(w, http.StatusBadRequest, "Unknown command")
		return
	}

	writeJSON(w, http.StatusOK, h.controller.Status())
}
