package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/armsim/internal/arm"
)

var (
	ErrNonFinite     = errors.New("value is not finite")
	ErrOutOfRange    = errors.New("value out of range")
	ErrInvalidView   = errors.New("invalid view settings")
	ErrInvalidServer = errors.New("invalid server settings")
)

// Armsim holds all configuration for the arm simulator binaries.
type Armsim struct {
	// Initial arm configuration
	Arm arm.Params `yaml:"arm"`

	// Input bounds enforced by interactive surfaces
	Bounds Bounds `yaml:"bounds"`

	// Canvas
	View ViewConfig `yaml:"view"`

	// HTTP UI
	Server ServerConfig `yaml:"server"`

	Log LogConfig `yaml:"log"`
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Bounds are the recommended input limits of the configuration surface.
// The engine accepts any finite value; these only exist for UI ergonomics.
type Bounds struct {
	Angle   Range        `yaml:"angle"`   // degrees, all links
	Lengths LengthBounds `yaml:"lengths"` // cm
	Mass    Range        `yaml:"mass"`    // kg, all masses
}

// LengthBounds holds a separate range per link.
type LengthBounds struct {
	L1 Range `yaml:"L1"`
	L2 Range `yaml:"L2"`
	L3 Range `yaml:"L3"`
}

// Length returns the range for link l.
func (b Bounds) Length(l arm.Link) Range {
	switch l {
	case arm.L2:
		return b.Lengths.L2
	case arm.L3:
		return b.Lengths.L3
	}
	return b.Lengths.L1
}

// Clamp limits every value of p to the bounds.
func (b Bounds) Clamp(p arm.Params) arm.Params {
	for _, l := range arm.Links() {
		p.Lengths = p.Lengths.With(l, b.Length(l).Clamp(p.Lengths.Get(l)))
		p.Angles = p.Angles.With(l, b.Angle.Clamp(p.Angles.Get(l)))
	}
	for _, j := range arm.MassJoints() {
		p.Masses = p.Masses.With(j, b.Mass.Clamp(p.Masses.Get(j)))
	}
	return p
}

// ViewConfig describes the 2D canvas. Scale is pixels per centimeter at zoom 1.
type ViewConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Scale    float64 `yaml:"scale"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	ZoomStep float64 `yaml:"zoom_step"`
	ZoomMin  float64 `yaml:"zoom_min"`
	ZoomMax  float64 `yaml:"zoom_max"`
}

// ServerConfig holds the HTTP UI listener and session policy.
type ServerConfig struct {
	BindAddress     string        `yaml:"bind_address"`
	Port            int           `yaml:"port"`
	SessionTTL      time.Duration `yaml:"session_ttl"`      // idle session lifetime (default: 30m)
	CleanupInterval time.Duration `yaml:"cleanup_interval"` // expiry sweep period (default: 1m)
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// LogConfig selects the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel parses Level. Unknown values fall back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// DefaultArmsim returns Armsim config with sensible defaults.
func DefaultArmsim() Armsim {
	return Armsim{
		Arm: arm.Params{
			Lengths: arm.LinkSet{L1: 25, L2: 25, L3: 10},
			Angles:  arm.AngleSet{L1: 45, L2: 0, L3: -45},
			Masses:  arm.MassSet{M2: 1, M3: 0.5, Load: 0.5},
		},
		Bounds: Bounds{
			Angle: Range{Min: -90, Max: 90},
			Lengths: LengthBounds{
				L1: Range{Min: 5, Max: 50},
				L2: Range{Min: 5, Max: 50},
				L3: Range{Min: 1, Max: 30},
			},
			Mass: Range{Min: 0.1, Max: 5},
		},
		View: ViewConfig{
			Width:    500,
			Height:   220,
			Scale:    5,
			OriginX:  150, // 500/2 - 100
			OriginY:  160, // 220/2 + 50
			ZoomStep: 0.1,
			ZoomMin:  0.5,
			ZoomMax:  2.5,
		},
		Server: ServerConfig{
			BindAddress:     "127.0.0.1",
			Port:            8080,
			SessionTTL:      30 * time.Minute,
			CleanupInterval: time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadArmsim loads config from a YAML file and validates it.
// If the file doesn't exist, returns defaults.
func LoadArmsim(path string) (Armsim, error) {
	cfg := DefaultArmsim()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
