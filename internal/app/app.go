// Package app provides the host loop for the installation: camera frames in,
// hand landmarks through the interaction engine, audio and stage effects out.
package app

import (
	"errors"
	"log"
	"strconv"
	"sync"

	"github.com/ayusman/veena/internal/capture"
	"github.com/ayusman/veena/internal/detector"
	"github.com/ayusman/veena/internal/engine"
	"github.com/ayusman/veena/internal/plugin"
	"github.com/ayusman/veena/internal/rhythm"
	"github.com/ayusman/veena/internal/stage"
	"github.com/ayusman/veena/internal/store"
	"github.com/ayusman/veena/internal/synth"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while the field is dormant and nobody moves.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a visitor is interacting.
	ActiveFPS = 30
	// IdleTimeoutMs is how long the scene must stay motionless before the
	// loop drops back to the idle frame rate.
	IdleTimeoutMs = 2000
)

// Experience names accepted by SetExperience.
const (
	ExperienceHarp    = "harp"
	ExperienceGuitar  = "guitar"
	ExperienceRecital = "recital"
)

// FramePublisher receives each composed stage frame. Satisfied by
// server.StageHandler.
type FramePublisher interface {
	Publish(frame stage.Frame)
}

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
	Publisher    FramePublisher
}

// App owns the frame loop and everything it drives: camera, motion gate,
// hand detector, interaction engine, synthesizer, stage, and plugins.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	output     synth.Output
	stage      *stage.Stage
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	mu         sync.RWMutex
	enabled    bool
	engine     *engine.Engine
	experience string
	song       *rhythm.Song
	transport  *rhythm.Transport
	tally      *rhythm.Tally

	stopCh  chan struct{}
	eventCh chan plugin.Event
}

// New creates a new App instance with the given configuration. The
// installation boots into the harp experience with tracking enabled.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		stage:      stage.New(stage.DefaultConfig()),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5000), // 5 second timeout for plugin execution
		enabled:    true,
		engine:     engine.New(engine.HarpConfig()),
		experience: ExperienceHarp,
		tally:      &rhythm.Tally{},
		eventCh:    make(chan plugin.Event, eventQueueSize),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	// Real audio when the device allows it, silence otherwise
	if out, err := synth.New(synth.DefaultConfig()); err == nil {
		a.output = out
	} else {
		log.Printf("Audio unavailable (%v), output muted", err)
		a.output = synth.NewMock()
	}

	return a
}

// SetEnabled enables or disables hand tracking. While disabled the frame
// loop idles and the stage feed freezes.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// LoadSettings applies persisted operator settings from the database:
// camera mirroring and the experience to boot into.
func (a *App) LoadSettings() error {
	if a.config.Store == nil {
		return nil
	}

	settings := a.config.Store.Settings()

	if v, err := settings.Get("mirror"); err == nil {
		if on, perr := strconv.ParseBool(v); perr == nil {
			a.camera.SetMirror(on)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if v, err := settings.Get("experience"); err == nil {
		if err := a.SetExperience(v); err != nil {
			log.Printf("Ignoring saved experience %q: %v", v, err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return nil
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start opens the camera and begins the frame loop. A missing camera is
// logged, not fatal: the API and stage stay up without tracking.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		log.Printf("Camera unavailable (%v), running without tracking", err)
	} else {
		a.camera.SetFPS(IdleFPS)
	}

	// Create stop channel and start the loops
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)
	go a.runEvents(a.stopCh)

	log.Println("Frame pipeline started")
	return nil
}

// Stop halts the frame loop and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the loops to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.transport != nil {
		a.transport.Stop()
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	// Close the audio output
	if err := a.output.Close(); err != nil {
		log.Printf("Error closing audio output: %v", err)
	}

	log.Println("Frame pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Experience returns the name of the current experience.
func (a *App) Experience() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.experience
}
