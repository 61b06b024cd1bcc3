// Package stage turns engine state into draw lists for the browser
// renderer. It owns the transient visuals the engine only requests as
// effects, particle swirls and light beams, and smooths a global
// distortion uniform that makes the projection warp with the total string
// energy.
package stage

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ayusman/veena/internal/engine"
	"github.com/ayusman/veena/internal/geom"
	"github.com/charmbracelet/harmonica"
)

// swirlFloor is the intensity below which a swirl is dropped.
const swirlFloor = 0.01

// String colors blend from idle to glow as vibration rises.
const (
	stringIdleColor = "#4a5f8a"
	stringGlowColor = "#ffe9a8"
)

// Config holds the stage parameters.
type Config struct {
	// Canvas size forwarded to the renderer.
	Width  float64
	Height float64

	// FPS is the compose rate the distortion spring is tuned against.
	FPS int

	// BeamLife is how many frames a beam lives.
	BeamLife int

	// GlowAmplitude is the vibration amplitude at which a string reaches
	// full glow color.
	GlowAmplitude float64

	// The distortion uniform chases total string energy scaled by
	// DistortionScale, smoothed by a spring so the warp breathes instead
	// of stepping.
	DistortionScale float64
	SpringFrequency float64
	SpringDamping   float64
}

// DefaultConfig returns the tuned stage parameters.
func DefaultConfig() Config {
	return Config{
		Width:           1280,
		Height:          720,
		FPS:             30,
		BeamLife:        18,
		GlowAmplitude:   25,
		DistortionScale: 1.0 / 60,
		SpringFrequency: 4.5,
		SpringDamping:   0.6,
	}
}

type swirl struct {
	pos       geom.Point
	intensity float64
	decay     float64
}

type beam struct {
	from  geom.Point
	to    geom.Point
	color string
	life  int
	total int
}

// Stage accumulates transient visuals between frames. It is owned by the
// frame loop and is not safe for concurrent use; the composed Frame is the
// only thing that leaves it.
type Stage struct {
	cfg    Config
	swirls []swirl
	beams  []beam

	spring  harmonica.Spring
	distPos float64
	distVel float64
}

// New creates an empty stage.
func New(cfg Config) *Stage {
	return &Stage{
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.SpringFrequency, cfg.SpringDamping),
	}
}

// AddSwirl spawns a particle swirl that fades by its decay factor each
// frame.
func (s *Stage) AddSwirl(pos geom.Point, intensity, decay float64) {
	s.swirls = append(s.swirls, swirl{pos: pos, intensity: intensity, decay: decay})
}

// AddBeam spawns a light beam that fades out over the configured life.
func (s *Stage) AddBeam(from, to geom.Point, color string) {
	s.beams = append(s.beams, beam{from: from, to: to, color: color, life: s.cfg.BeamLife, total: s.cfg.BeamLife})
}

// Reset drops every transient visual and relaxes the distortion. Called
// when the installation switches experiences.
func (s *Stage) Reset() {
	s.swirls = nil
	s.beams = nil
	s.distPos = 0
	s.distVel = 0
}

// StringView is one string in a frame's draw list.
type StringView struct {
	Index     int        `json:"index"`
	P1        geom.Point `json:"p1"`
	P2        geom.Point `json:"p2"`
	Amplitude float64    `json:"amplitude"`
	Color     string     `json:"color"`
}

// SwirlView is one particle swirl in a frame's draw list.
type SwirlView struct {
	Pos       geom.Point `json:"pos"`
	Intensity float64    `json:"intensity"`
}

// BeamView is one light beam in a frame's draw list. Fade runs from 1 when
// fresh to 0 as the beam expires.
type BeamView struct {
	From  geom.Point `json:"from"`
	To    geom.Point `json:"to"`
	Color string     `json:"color"`
	Fade  float64    `json:"fade"`
}

// NoteView is one approaching chart note in a frame's draw list.
type NoteView struct {
	String   int        `json:"string"`
	Pos      geom.Point `json:"pos"`
	Progress float64    `json:"progress"`
	Hit      bool       `json:"hit"`
	Missed   bool       `json:"missed"`
}

// Frame is the complete draw list for one projected frame. It is consumed
// fire-and-forget by the renderer; nothing reads back.
type Frame struct {
	TimestampMs   int64        `json:"timestamp_ms"`
	Width         float64      `json:"width"`
	Height        float64      `json:"height"`
	Mode          string       `json:"mode"`
	SpawnProgress float64      `json:"spawn_progress"`
	LockProgress  float64      `json:"lock_progress"`
	Preset        int          `json:"preset"`
	PresetName    string       `json:"preset_name,omitempty"`
	PresetFlash   bool         `json:"preset_flash"`
	Distortion    float64      `json:"distortion"`
	Strings       []StringView `json:"strings"`
	Swirls        []SwirlView  `json:"swirls"`
	Beams         []BeamView   `json:"beams"`
	Notes         []NoteView   `json:"notes"`
}

// Compose phrases the engine snapshot plus the stage's own transients as a
// draw list, then ages the transients for the next frame. Visuals added
// since the previous Compose render at full strength once before decaying.
func (s *Stage) Compose(snap engine.Snapshot, now time.Time) Frame {
	energy := 0.0
	for _, st := range snap.Strings {
		energy += st.Amplitude
	}
	target := energy * s.cfg.DistortionScale
	if target > 1 {
		target = 1
	}
	s.distPos, s.distVel = s.spring.Update(s.distPos, s.distVel, target)

	f := Frame{
		TimestampMs:   now.UnixMilli(),
		Width:         s.cfg.Width,
		Height:        s.cfg.Height,
		Mode:          string(snap.Mode),
		SpawnProgress: snap.SpawnProgress,
		LockProgress:  snap.LockProgress,
		Preset:        snap.Preset,
		PresetName:    snap.PresetName,
		PresetFlash:   snap.PresetFlash,
		Distortion:    s.distPos,
		Strings:       make([]StringView, len(snap.Strings)),
		Swirls:        make([]SwirlView, len(s.swirls)),
		Beams:         make([]BeamView, len(s.beams)),
	}

	for i, st := range snap.Strings {
		f.Strings[i] = StringView{
			Index:     st.Index,
			P1:        st.Seg.P1,
			P2:        st.Seg.P2,
			Amplitude: st.Amplitude,
			Color:     s.stringColor(st.Amplitude),
		}
	}
	for i, sw := range s.swirls {
		f.Swirls[i] = SwirlView{Pos: sw.pos, Intensity: sw.intensity}
	}
	for i, b := range s.beams {
		f.Beams[i] = BeamView{From: b.from, To: b.to, Color: b.color, Fade: float64(b.life) / float64(b.total)}
	}
	// Notes whose slot has no string this frame cannot be placed and are
	// left out of the draw list.
	for _, n := range snap.Notes {
		pos, ok := snap.NotePosition(n)
		if !ok {
			continue
		}
		f.Notes = append(f.Notes, NoteView{
			String:   n.Note.String,
			Pos:      pos,
			Progress: n.Progress,
			Hit:      n.Hit,
			Missed:   n.Missed,
		})
	}

	s.age()
	return f
}

// age decays swirls and counts down beams, dropping what is spent.
func (s *Stage) age() {
	keptSwirls := s.swirls[:0]
	for _, sw := range s.swirls {
		sw.intensity *= sw.decay
		if sw.intensity >= swirlFloor {
			keptSwirls = append(keptSwirls, sw)
		}
	}
	s.swirls = keptSwirls

	keptBeams := s.beams[:0]
	for _, b := range s.beams {
		b.life--
		if b.life > 0 {
			keptBeams = append(keptBeams, b)
		}
	}
	s.beams = keptBeams
}

func (s *Stage) stringColor(amplitude float64) string {
	t := 0.0
	if s.cfg.GlowAmplitude > 0 {
		t = amplitude / s.cfg.GlowAmplitude
	}
	if t > 1 {
		t = 1
	}
	return lerpHex(stringIdleColor, stringGlowColor, t)
}

// lerpHex blends two #rrggbb colors. A malformed input returns the first
// color unchanged.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab, ok := parseHex(a)
	if !ok {
		return a
	}
	br, bg, bb, ok := parseHex(b)
	if !ok {
		return a
	}
	mix := func(x, y int) int {
		return x + int(math.Round(float64(y-x)*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func parseHex(c string) (r, g, b int, ok bool) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n >> 16), int(n >> 8 & 0xff), int(n & 0xff), true
}
