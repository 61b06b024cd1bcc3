package app

import (
	"encoding/json"
	"log"
	"time"

	"github.com/ayusman/veena/internal/plugin"
)

// eventQueueSize bounds the plugin event queue. The frame loop never
// blocks on plugin delivery; overflow drops the event.
const eventQueueSize = 64

type pluckPayload struct {
	String int `json:"string"`
	Hand   int `json:"hand"`
	Finger int `json:"finger"`
}

type spawnPayload struct {
	Spawned bool `json:"spawned"`
}

type presetPayload struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type judgmentPayload struct {
	Verdict string `json:"verdict"`
	String  int    `json:"string"`
}

// queueEvent hands an event to the plugin worker without blocking the
// frame loop. Events nobody subscribes to are skipped outright.
func (a *App) queueEvent(event string, now time.Time, payload interface{}) {
	if len(a.pluginMgr.Subscribed(event)) == 0 {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	ev := plugin.Event{
		Event:       event,
		TimestampMs: now.UnixMilli(),
		Payload:     data,
	}

	select {
	case a.eventCh <- ev:
	default:
		log.Printf("Plugin event queue full, dropping %s", event)
	}
}

// runEvents delivers queued events to subscribed plugins, one execution
// at a time. Plugin failures are logged and never reach the frame loop.
func (a *App) runEvents(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case ev := <-a.eventCh:
			for _, p := range a.pluginMgr.Subscribed(ev.Event) {
				ev.Config = p.Manifest.Config
				resp, err := a.pluginExec.Execute(p, &ev)
				if err != nil {
					log.Printf("Plugin %s failed: %v", p.Manifest.Name, err)
					continue
				}
				if !resp.Success {
					log.Printf("Plugin %s error: %s", p.Manifest.Name, resp.Error)
				}
			}
		}
	}
}
