// Package testdata holds embedded demo assets: song charts used to seed an
// empty library and to drive workflow tests.
package testdata

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/ayusman/veena/internal/rhythm"
)

//go:embed songs/*.json
var songsFS embed.FS

// LoadSong loads an embedded song chart by name (without extension).
func LoadSong(name string) (*rhythm.Song, error) {
	data, err := songsFS.ReadFile("songs/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("load song %s: %w", name, err)
	}

	var song rhythm.Song
	if err := json.Unmarshal(data, &song); err != nil {
		return nil, fmt.Errorf("decode song %s: %w", name, err)
	}

	return &song, nil
}
