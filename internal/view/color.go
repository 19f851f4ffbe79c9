package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/udisondev/armsim/internal/arm"
)

// NeutralTorque is shown while a joint has no torque history yet.
var NeutralTorque = color.RGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}

// TorqueColor maps current torque onto a green→red gradient relative to the
// highest torque seen so far at the same joint. Red means current == runningMax.
func TorqueColor(current, runningMax float64) color.RGBA {
	if runningMax == 0 {
		return NeutralTorque
	}
	ratio := current / runningMax
	return color.RGBA{
		R: channel(255 * ratio),
		G: channel(255 * (1 - ratio)),
		A: 0xFF,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Floor(v))))
}

// Hex formats c as #RRGGBB.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// CSS formats c as rgb(r, g, b).
func CSS(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Palette holds the fixed drawing colors.
type Palette struct {
	Links map[arm.Link]color.RGBA
	Base  color.RGBA
	Joint color.RGBA
	Load  color.RGBA
	Grid  color.RGBA
	Axis  color.RGBA
	Text  color.RGBA
}

// DefaultPalette returns the standard link/joint colors.
func DefaultPalette() Palette {
	return Palette{
		Links: map[arm.Link]color.RGBA{
			arm.L1: {R: 0xFF, G: 0x57, B: 0x22, A: 0xFF},
			arm.L2: {R: 0x21, G: 0x96, B: 0xF3, A: 0xFF},
			arm.L3: {R: 0x9C, G: 0x27, B: 0xB0, A: 0xFF},
		},
		Base:  color.RGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
		Joint: color.RGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xFF},
		Load:  color.RGBA{R: 0xFF, G: 0xC1, B: 0x07, A: 0xFF},
		Grid:  color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF},
		Axis:  color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF},
		Text:  color.RGBA{A: 0xFF},
	}
}
