// Package tray provides the operator's system tray menu for the installation.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray is the system tray menu: tracking toggle, current experience
// display, stage link, quit.
type Tray struct {
	onToggle   func(enabled bool)
	onStage    func()
	onQuit     func()
	enabled    bool
	experience string
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle     *systray.MenuItem
	menuExperience *systray.MenuItem
}

// New creates a new Tray instance with tracking enabled by default.
func New() *Tray {
	return &Tray{
		enabled:    true,
		experience: "harp",
	}
}

// OnToggle sets the callback function to be called when tracking is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnStage sets the callback function to be called when the stage menu item is clicked.
func (t *Tray) OnStage(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStage = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	// Set the tray title and tooltip
	systray.SetTitle("Veena")
	systray.SetTooltip("Veena Interactive Stage")

	// Create menu items
	t.menuToggle = systray.AddMenuItem("● Tracking on", "Toggle hand tracking")
	systray.AddSeparator()

	t.mu.RLock()
	experience := t.experience
	t.mu.RUnlock()
	t.menuExperience = systray.AddMenuItem("Experience: "+experience, "Current experience")
	t.menuExperience.Disable()
	systray.AddSeparator()

	menuStage := systray.AddMenuItem("Open Stage...", "Open the stage in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Veena")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuStage.ClickedCh:
				t.handleStage()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
// It performs cleanup tasks.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the tracking toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	// Update menu item text based on new state
	if enabled {
		t.menuToggle.SetTitle("● Tracking on")
	} else {
		t.menuToggle.SetTitle("○ Tracking off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleStage handles the stage menu item click.
func (t *Tray) handleStage() {
	t.mu.RLock()
	callback := t.onStage
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetExperience updates the experience display in the menu. Safe to call
// before Run; the menu picks up the name when it is built.
func (t *Tray) SetExperience(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.experience = name
	if t.menuExperience != nil {
		t.menuExperience.SetTitle("Experience: " + name)
	}
}

// IsEnabled returns whether tracking is currently enabled.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
