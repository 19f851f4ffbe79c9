package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/armsim/internal/arm"
)

func TestViewport_RoundTrip(t *testing.T) {
	v := Viewport{Width: 500, Height: 220, Scale: 5, OriginX: 150, OriginY: 160, PanX: -12, PanY: 30}

	x, y := v.ToScreen(arm.Point{})
	assert.Equal(t, 138.0, x)
	assert.Equal(t, 190.0, y)

	x, y = v.ToScreen(arm.Point{X: 10, Y: -4})
	assert.Equal(t, 188.0, x)
	assert.Equal(t, 170.0, y)

	p := v.ToWorld(x, y)
	assert.InDelta(t, 10, p.X, 1e-12)
	assert.InDelta(t, -4, p.Y, 1e-12)

	assert.Equal(t, 5.0, v.PixelsToCm(25))
}
