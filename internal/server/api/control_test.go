package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/veena/internal/store"
)

// mockController records control calls for testing.
type mockController struct {
	experience string
	playedID   string
	stopped    bool
	playErr    error
	status     Status
}

func (m *mockController) SetExperience(name string) error {
	switch name {
	case "harp", "guitar", "recital":
		m.experience = name
		return nil
	}
	return fmt.Errorf("unknown experience %q", name)
}

func (m *mockController) PlaySong(id string) error {
	if m.playErr != nil {
		return m.playErr
	}
	m.playedID = id
	return nil
}

func (m *mockController) StopSong() {
	m.stopped = true
}

func (m *mockController) Status() Status {
	return m.status
}

var _ Controller = (*mockController)(nil)

func postControl(t *testing.T, handler *ControlHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/control", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestControlHandler_Experience(t *testing.T) {
	ctrl := &mockController{}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "experience", "experience": "guitar"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if ctrl.experience != "guitar" {
		t.Errorf("expected experience 'guitar', got %q", ctrl.experience)
	}
}

func TestControlHandler_Experience_Unknown(t *testing.T) {
	ctrl := &mockController{}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "experience", "experience": "theremin"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestControlHandler_Play(t *testing.T) {
	ctrl := &mockController{}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "play", "song_id": "song-1"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if ctrl.playedID != "song-1" {
		t.Errorf("expected song-1 to be played, got %q", ctrl.playedID)
	}
}

func TestControlHandler_Play_MissingID(t *testing.T) {
	ctrl := &mockController{}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "play"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestControlHandler_Play_SongNotFound(t *testing.T) {
	ctrl := &mockController{playErr: fmt.Errorf("load song: %w", store.ErrNotFound)}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "play", "song_id": "missing"}`)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestControlHandler_Stop(t *testing.T) {
	ctrl := &mockController{}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "stop"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !ctrl.stopped {
		t.Error("expected StopSong to be called")
	}
}

func TestControlHandler_UnknownCommand(t *testing.T) {
	ctrl := &mockController{}
	handler := NewControlHandler(ctrl)

	rec := postControl(t, handler, `{"command": "dance"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestControlHandler_Status(t *testing.T) {
	ctrl := &mockController{
		status: Status{
			Experience: "recital",
			Mode:       "locked",
			Playing:    true,
			SongID:     "song-1",
			SongTitle:  "Morning Raga",
			Score:      840,
			Combo:      6,
		},
	}
	handler := NewControlHandler(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response Status
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response != ctrl.status {
		t.Errorf("status mismatch: got %+v, want %+v", response, ctrl.status)
	}
}

func TestControlHandler_Status_MethodNotAllowed(t *testing.T) {
	handler := NewControlHandler(&mockController{})

	req := httptest.NewRequest(http.MethodDelete, "/api/status", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
