// Package plugin provides discovery and execution of external event plugins
// for the installation. Plugins are standalone executables that subscribe to
// engine events (plucks, judgments, spawns, preset changes) and receive them
// as JSON on stdin.
package plugin

import "encoding/json"

// Event names a plugin can subscribe to via its manifest.
const (
	EventPluck    = "pluck"
	EventJudgment = "judgment"
	EventSpawn    = "spawn"
	EventPreset   = "preset"
)

// Manifest describes a plugin's metadata and the events it subscribes to.
type Manifest struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Executable  string          `json:"executable"`
	Events      []string        `json:"events"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Event represents an engine event delivered to a plugin for execution.
type Event struct {
	Event       string          `json:"event"`
	TimestampMs int64           `json:"timestamp_ms"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
