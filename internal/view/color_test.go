package view

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/armsim/internal/arm"
)

func TestTorqueColor(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		max     float64
		want    color.RGBA
	}{
		{"no history", 0, 0, NeutralTorque},
		{"no history ignores current", 3, 0, NeutralTorque},
		{"at max", 6.27, 6.27, color.RGBA{R: 255, A: 255}},
		{"half", 2.5, 5, color.RGBA{R: 127, G: 127, A: 255}},
		{"zero torque", 0, 5, color.RGBA{G: 255, A: 255}},
		{"ratio from session", 6.27, 7.7, color.RGBA{R: 207, G: 47, A: 255}},
		{"above max saturates", 10, 5, color.RGBA{R: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TorqueColor(tt.current, tt.max))
		})
	}
}

func TestHexAndCSS(t *testing.T) {
	pal := DefaultPalette()

	assert.Equal(t, "#FF5722", Hex(pal.Links[arm.L1]))
	assert.Equal(t, "#2196F3", Hex(pal.Links[arm.L2]))
	assert.Equal(t, "#9C27B0", Hex(pal.Links[arm.L3]))
	assert.Equal(t, "#4CAF50", Hex(NeutralTorque))
	assert.Equal(t, "rgb(207, 47, 0)", CSS(color.RGBA{R: 207, G: 47, A: 255}))
}
