package view

import "github.com/udisondev/armsim/internal/arm"

// Viewport maps engine coordinates (cm) to canvas pixels.
// It never changes engine output; pan and zoom only move the picture.
type Viewport struct {
	Width   float64
	Height  float64
	Scale   float64 // px per cm, zoom included
	OriginX float64 // base position before panning
	OriginY float64
	PanX    float64
	PanY    float64
}

// ToScreen converts an engine point into canvas pixels.
func (v Viewport) ToScreen(p arm.Point) (x, y float64) {
	return v.OriginX + v.PanX + p.X*v.Scale, v.OriginY + v.PanY + p.Y*v.Scale
}

// ToWorld converts canvas pixels back into engine coordinates.
func (v Viewport) ToWorld(x, y float64) arm.Point {
	return arm.Point{
		X: (x - v.OriginX - v.PanX) / v.Scale,
		Y: (y - v.OriginY - v.PanY) / v.Scale,
	}
}

// PixelsToCm converts a pixel length into centimeters at the current scale.
func (v Viewport) PixelsToCm(px float64) float64 {
	return px / v.Scale
}
