package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armsim/internal/arm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "armsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultArmsim_Valid(t *testing.T) {
	cfg := DefaultArmsim()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, arm.LinkSet{L1: 25, L2: 25, L3: 10}, cfg.Arm.Lengths)
	assert.Equal(t, arm.AngleSet{L1: 45, L2: 0, L3: -45}, cfg.Arm.Angles)
	assert.Equal(t, arm.MassSet{M2: 1, M3: 0.5, Load: 0.5}, cfg.Arm.Masses)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoadArmsim_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadArmsim(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultArmsim(), cfg)
}

func TestLoadArmsim_ShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadArmsim("../../config/armsim.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultArmsim(), cfg)
}

func TestLoadArmsim_OverridesKeepDefaults(t *testing.T) {
	path := writeConfig(t, `
arm:
  angles:
    L1: 30
  masses:
    LOAD: 2
server:
  port: 9090
  session_ttl: 5m
log:
  level: debug
`)

	cfg, err := LoadArmsim(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Arm.Angles.L1)
	assert.Equal(t, -45.0, cfg.Arm.Angles.L3, "untouched fields keep defaults")
	assert.Equal(t, 2.0, cfg.Arm.Masses.Load)
	assert.Equal(t, 1.0, cfg.Arm.Masses.M2)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, time.Minute, cfg.Server.CleanupInterval)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadArmsim_ParseError(t *testing.T) {
	path := writeConfig(t, "arm: [not a map")

	_, err := LoadArmsim(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadArmsim_ValidationErrors(t *testing.T) {
	path := writeConfig(t, `
arm:
  lengths:
    L3: 45
  angles:
    L2: .nan
`)

	_, err := LoadArmsim(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Contains(t, err.Error(), "arm.lengths.L3")
	assert.Contains(t, err.Error(), "arm.angles.L2")
}

func TestValidate_View(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ViewConfig)
	}{
		{"zero width", func(v *ViewConfig) { v.Width = 0 }},
		{"negative scale", func(v *ViewConfig) { v.Scale = -1 }},
		{"nan scale", func(v *ViewConfig) { v.Scale = math.NaN() }},
		{"inverted zoom", func(v *ViewConfig) { v.ZoomMin, v.ZoomMax = 3, 1 }},
		{"zero step", func(v *ViewConfig) { v.ZoomStep = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultArmsim()
			tt.mutate(&cfg.View)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidView)
		})
	}
}

func TestValidate_Server(t *testing.T) {
	cfg := DefaultArmsim()
	cfg.Server.CleanupInterval = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidServer)

	cfg = DefaultArmsim()
	cfg.Server.Port = 70000
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidServer)
}

func TestValidate_InvertedBounds(t *testing.T) {
	cfg := DefaultArmsim()
	cfg.Bounds.Mass = Range{Min: 5, Max: 0.1}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bounds.mass")
}

func TestRange(t *testing.T) {
	r := Range{Min: -90, Max: 90}

	assert.True(t, r.Contains(-90))
	assert.True(t, r.Contains(90))
	assert.False(t, r.Contains(90.01))

	assert.Equal(t, 90.0, r.Clamp(120))
	assert.Equal(t, -90.0, r.Clamp(-500))
	assert.Equal(t, 12.5, r.Clamp(12.5))
}

func TestBounds_Clamp(t *testing.T) {
	b := DefaultArmsim().Bounds

	p := b.Clamp(arm.Params{
		Lengths: arm.LinkSet{L1: 1, L2: 60, L3: 31},
		Angles:  arm.AngleSet{L1: -100, L2: 45, L3: 91},
		Masses:  arm.MassSet{M2: 0, M3: 2, Load: 10},
	})

	assert.Equal(t, arm.LinkSet{L1: 5, L2: 50, L3: 30}, p.Lengths)
	assert.Equal(t, arm.AngleSet{L1: -90, L2: 45, L3: 90}, p.Angles)
	assert.Equal(t, arm.MassSet{M2: 0.1, M3: 2, Load: 5}, p.Masses)
}

func TestCheckParams(t *testing.T) {
	p := DefaultArmsim().Arm
	require.NoError(t, CheckParams(p))

	// engine accepts out-of-bounds values; only non-finite is rejected
	p.Angles.L1 = 720
	require.NoError(t, CheckParams(p))

	p.Masses.M3 = math.Inf(1)
	err := CheckParams(p)
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Contains(t, err.Error(), "masses.M3")
}

func TestLogConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "ERROR"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "loud"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{}.SlogLevel())
}
