package view

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/config"
)

var ErrUnknownCategory = errors.New("unknown parameter category")

// Category groups the named inputs of the configuration surface.
type Category string

const (
	Angles  Category = "angles"
	Lengths Category = "lengths"
	Masses  Category = "masses"
)

// ParseCategory converts "angles", "lengths" or "masses" into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Angles, Lengths, Masses:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Offset is a pan translation in pixels.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type dragState struct {
	active bool
	startX float64
	startY float64
}

// Snapshot is an immutable copy of a session's state, ready for rendering.
type Snapshot struct {
	Params    arm.Params               `json:"params"`
	Frame     arm.JointFrame           `json:"frame"`
	Torques   arm.TorqueResult         `json:"torques"`
	MaxTorque map[arm.Joint]float64    `json:"max_torque"`
	Colors    map[arm.Joint]color.RGBA `json:"-"`
	ColorCSS  map[arm.Joint]string     `json:"colors"`
	Zoom      float64                  `json:"zoom"`
	Pan       Offset                   `json:"pan"`
	Dragging  bool                     `json:"dragging"`
}

// ZoomPercent returns the zoom factor as a whole percentage.
func (s Snapshot) ZoomPercent() int {
	return int(math.Round(s.Zoom * 100))
}

// Session owns the mutable interaction state of one viewer: the current
// parameters, the running maximum torque per joint, zoom, pan and drag.
// The running maximum starts at zero and only grows for the lifetime of the session.
// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	bounds config.Bounds
	view   config.ViewConfig

	params  arm.Params
	frame   arm.JointFrame
	torques arm.TorqueResult
	maxNm   map[arm.Joint]float64

	zoom float64
	pan  Offset
	drag dragState
}

// NewSession creates a session from cfg and resolves the initial configuration.
func NewSession(cfg config.Armsim) *Session {
	s := &Session{
		bounds: cfg.Bounds,
		view:   cfg.View,
		params: cfg.Arm,
		maxNm:  make(map[arm.Joint]float64, 3),
		zoom:   1,
	}
	s.recompute()
	return s
}

// recompute resolves the current params and folds the result into the running max.
// Caller must hold s.mu (or be the constructor).
func (s *Session) recompute() {
	s.frame, s.torques = arm.Solve(s.params)
	for _, j := range arm.ActuatedJoints() {
		s.maxNm[j] = math.Max(s.maxNm[j], s.torques.At(j).Nm)
	}
}

// Set updates one named input. Non-finite values are rejected; values outside
// the configured bounds are clamped.
func (s *Session) Set(category Category, name string, value float64) error {
	field := string(category) + "." + name
	if err := config.CheckFinite(field, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.params
	switch category {
	case Angles, Lengths:
		l, err := arm.ParseLink(name)
		if err != nil {
			return err
		}
		if category == Angles {
			p.Angles = p.Angles.With(l, s.bounds.Angle.Clamp(value))
		} else {
			p.Lengths = p.Lengths.With(l, s.bounds.Length(l).Clamp(value))
		}
	case Masses:
		j, err := arm.ParseJoint(name)
		if err != nil {
			return err
		}
		if j == arm.M1 {
			return fmt.Errorf("%s: %w", field, arm.ErrMasslessJoint)
		}
		p.Masses = p.Masses.With(j, s.bounds.Mass.Clamp(value))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	s.params = p
	s.recompute()
	return nil
}

// SetParams replaces the whole configuration, clamped to bounds.
func (s *Session) SetParams(p arm.Params) error {
	if err := config.CheckParams(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = s.bounds.Clamp(p)
	s.recompute()
	return nil
}

// Params returns the current configuration.
func (s *Session) Params() arm.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Viewport returns the pixel mapping for the current zoom and pan.
func (s *Session) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport()
}

// State returns the snapshot and the pixel mapping taken at the same moment,
// so a drawing never mixes the arm of one update with the zoom of another.
func (s *Session) State() (Snapshot, Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), s.viewport()
}

// Caller must hold s.mu.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Params:    s.params,
		Frame:     s.frame,
		Torques:   s.torques,
		MaxTorque: make(map[arm.Joint]float64, 3),
		Colors:    make(map[arm.Joint]color.RGBA, 3),
		ColorCSS:  make(map[arm.Joint]string, 3),
		Zoom:      s.zoom,
		Pan:       s.pan,
		Dragging:  s.drag.active,
	}
	for _, j := range arm.ActuatedJoints() {
		c := TorqueColor(s.torques.At(j).Nm, s.maxNm[j])
		snap.MaxTorque[j] = s.maxNm[j]
		snap.Colors[j] = c
		snap.ColorCSS[j] = CSS(c)
	}
	return snap
}

// Caller must hold s.mu.
func (s *Session) viewport() Viewport {
	return Viewport{
		Width:   float64(s.view.Width),
		Height:  float64(s.view.Height),
		Scale:   s.view.Scale * s.zoom,
		OriginX: s.view.OriginX,
		OriginY: s.view.OriginY,
		PanX:    s.pan.X,
		PanY:    s.pan.Y,
	}
}

// ZoomIn increases zoom by one step up to the configured maximum.
func (s *Session) ZoomIn() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zoom = math.Min(s.zoom+s.view.ZoomStep, s.view.ZoomMax)
	return s.zoom
}

// ZoomOut decreases zoom by one step down to the configured minimum.
func (s *Session) ZoomOut() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zoom = math.Max(s.zoom-s.view.ZoomStep, s.view.ZoomMin)
	return s.zoom
}

// Reset restores zoom 1 and removes panning. Parameters and the running max are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zoom = 1
	s.pan = Offset{}
	s.drag = dragState{}
}

// Pan moves the picture by (dx, dy) pixels.
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pan.X += dx
	s.pan.Y += dy
}

// BeginDrag starts a drag at pointer position (x, y).
func (s *Session) BeginDrag(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag = dragState{
		active: true,
		startX: x - s.pan.X,
		startY: y - s.pan.Y,
	}
}

// DragTo moves the picture so that it follows the pointer. No-op when not dragging.
func (s *Session) DragTo(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drag.active {
		return
	}
	s.pan = Offset{X: x - s.drag.startX, Y: y - s.drag.startY}
}

// EndDrag finishes the current drag.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drag.active = false
}
