// Package main provides a Philips Hue bridge plugin.
// It flashes lights in response to plucks and colors them by rhythm verdict.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Event represents the input from the plugin executor.
type Event struct {
	Event       string          `json:"event"`
	TimestampMs int64           `json:"timestamp_ms"`
	Payload     json.RawMessage `json:"payload"`
	Config      json.RawMessage `json:"config"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Config holds the bridge connection settings from the plugin manifest.
type Config struct {
	Bridge   string `json:"bridge"`
	Username string `json:"username"`
	Light    int    `json:"light"`
}

// lightState is the body sent to the bridge's light state endpoint.
type lightState struct {
	On             bool `json:"on"`
	Bri            int  `json:"bri"`
	Hue            int  `json:"hue"`
	Sat            int  `json:"sat"`
	TransitionTime int  `json:"transitiontime"`
}

// verdictHues maps rhythm verdicts to Hue color angles (0-65535).
var verdictHues = map[string]int{
	"perfect": 25500, // green
	"good":    12750, // yellow
	"miss":    0,     // red
}

func main() {
	// Read event from stdin
	var ev Event
	if err := json.NewDecoder(os.Stdin).Decode(&ev); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode event: %v", err))
		return
	}

	// Parse the bridge config
	var cfg Config
	if len(ev.Config) > 0 {
		if err := json.Unmarshal(ev.Config, &cfg); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to parse config: %v", err))
			return
		}
	}
	if cfg.Bridge == "" {
		writeErrorResponse("bridge is required")
		return
	}
	if cfg.Username == "" {
		writeErrorResponse("username is required")
		return
	}

	// Handle pluck and judgment events
	switch ev.Event {
	case "pluck":
		if err := handlePluck(cfg); err != nil {
			writeErrorResponse(fmt.Sprintf("event %s failed: %v", ev.Event, err))
			return
		}
	case "judgment":
		if err := handleJudgment(cfg, ev.Payload); err != nil {
			writeErrorResponse(fmt.Sprintf("event %s failed: %v", ev.Event, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unhandled event: %s", ev.Event))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// handlePluck flashes the light briefly at full brightness.
func handlePluck(cfg Config) error {
	return setState(cfg, lightState{
		On:             true,
		Bri:            254,
		Hue:            46920, // blue
		Sat:            200,
		TransitionTime: 1,
	})
}

// handleJudgment colors the light by the verdict in the payload.
func handleJudgment(cfg Config, payload json.RawMessage) error {
	var p struct {
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("failed to parse payload: %w", err)
	}

	hue, ok := verdictHues[p.Verdict]
	if !ok {
		return fmt.Errorf("unknown verdict: %s", p.Verdict)
	}

	return setState(cfg, lightState{
		On:             true,
		Bri:            254,
		Hue:            hue,
		Sat:            254,
		TransitionTime: 1,
	})
}

// setState sends a light state update to the bridge.
func setState(cfg Config, state lightState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s/api/%s/lights/%d/state", cfg.Bridge, cfg.Username, cfg.Light)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
