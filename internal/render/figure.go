// Package render turns session snapshots into figures, terminal reports and charts.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/view"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

const (
	linkWidth   = 6  // px
	jointRadius = 10 // px
	baseRadius  = 12 // px
	loadHalf    = 12 // px, half side of the load square
	ringOuter   = 25 // px, M1 ring; each next joint is 4px smaller
	ringStep    = 4
	ringPoints  = 64
)

// px converts canvas pixels (96 dpi) into vg lengths.
func px(v float64) vg.Length {
	return vg.Length(v) * vg.Inch / 96
}

// xy converts an engine point into plot coordinates.
// Engine y grows downward, plot y grows upward.
func xy(p arm.Point) plotter.XY {
	return plotter.XY{X: p.X, Y: -p.Y}
}

func polyline(pts ...arm.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = xy(p)
	}
	return out
}

// Figure draws the arm of snap as seen through vp: grid, axes through the base,
// base block, links, torque rings, joints, load and labels.
// Zoom and pan only change the visible axis ranges.
func Figure(snap view.Snapshot, vp view.Viewport, pal view.Palette) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "3-link arm"
	p.X.Label.Text = "x (cm)"
	p.Y.Label.Text = "y (cm)"

	grid := plotter.NewGrid()
	grid.Vertical.Color = pal.Grid
	grid.Horizontal.Color = pal.Grid
	p.Add(grid)

	topLeft := vp.ToWorld(0, 0)
	bottomRight := vp.ToWorld(vp.Width, vp.Height)

	f := snap.Frame
	steps := []func(*plot.Plot) error{
		func(p *plot.Plot) error { return addAxes(p, topLeft, bottomRight, pal) },
		func(p *plot.Plot) error { return addBase(p, vp, pal) },
		func(p *plot.Plot) error { return addLinks(p, f, pal) },
		func(p *plot.Plot) error { return addRings(p, snap, vp) },
		func(p *plot.Plot) error { return addJoints(p, f, pal) },
		func(p *plot.Plot) error { return addJointLabels(p, f, pal) },
	}
	for _, step := range steps {
		if err := step(p); err != nil {
			return nil, err
		}
	}

	// Ranges last: Add widens them to fit the data.
	p.X.Min, p.X.Max = topLeft.X, bottomRight.X
	p.Y.Min, p.Y.Max = -bottomRight.Y, -topLeft.Y

	return p, nil
}

func addAxes(p *plot.Plot, topLeft, bottomRight arm.Point, pal view.Palette) error {
	for _, seg := range [][2]arm.Point{
		{{X: topLeft.X}, {X: bottomRight.X}},
		{{Y: topLeft.Y}, {Y: bottomRight.Y}},
	} {
		l, err := plotter.NewLine(polyline(seg[0], seg[1]))
		if err != nil {
			return fmt.Errorf("axis: %w", err)
		}
		l.LineStyle.Color = pal.Axis
		l.LineStyle.Width = px(1)
		p.Add(l)
	}
	return nil
}

func addBase(p *plot.Plot, vp view.Viewport, pal view.Palette) error {
	x, y := vp.OriginX+vp.PanX, vp.OriginY+vp.PanY
	corners := []arm.Point{
		vp.ToWorld(x-50, y-10),
		vp.ToWorld(x+30, y-10),
		vp.ToWorld(x+30, y+20),
		vp.ToWorld(x-50, y+20),
	}
	poly, err := plotter.NewPolygon(polyline(corners...))
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}
	poly.Color = pal.Base
	poly.LineStyle.Color = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	poly.LineStyle.Width = px(1)
	p.Add(poly)
	return nil
}

func addLinks(p *plot.Plot, f arm.JointFrame, pal view.Palette) error {
	segments := []struct {
		link     arm.Link
		from, to arm.Point
	}{
		{arm.L1, f.M1, f.M2},
		{arm.L2, f.M2, f.M3},
		{arm.L3, f.M3, f.Load},
	}
	for _, s := range segments {
		l, err := plotter.NewLine(polyline(s.from, s.to))
		if err != nil {
			return fmt.Errorf("link %s: %w", s.link, err)
		}
		l.LineStyle.Color = pal.Links[s.link]
		l.LineStyle.Width = px(linkWidth)
		p.Add(l)
		p.Legend.Add("Link "+strings.TrimPrefix(string(s.link), "L"), l)
	}
	return nil
}

// addRings draws a dashed ring around each actuated joint in its torque color,
// with the kgf·cm value above it. Ring radii are fixed in pixels.
func addRings(p *plot.Plot, snap view.Snapshot, vp view.Viewport) error {
	var (
		centers plotter.XYs
		texts   []string
		colors  []color.Color
	)
	for i, j := range arm.ActuatedJoints() {
		c := snap.Frame.At(j)
		r := vp.PixelsToCm(float64(ringOuter - i*ringStep))

		pts := make([]arm.Point, ringPoints+1)
		for k := range pts {
			a := 2 * math.Pi * float64(k) / ringPoints
			pts[k] = arm.Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
		}
		ring, err := plotter.NewLine(polyline(pts...))
		if err != nil {
			return fmt.Errorf("ring %s: %w", j, err)
		}
		ring.LineStyle.Color = snap.Colors[j]
		ring.LineStyle.Width = px(3)
		ring.LineStyle.Dashes = []vg.Length{px(5), px(3)}
		p.Add(ring)

		centers = append(centers, xy(c))
		texts = append(texts, snap.Torques.At(j).FormatKgfCm()+" kgf·cm")
		colors = append(colors, snap.Colors[j])
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: centers, Labels: texts})
	if err != nil {
		return fmt.Errorf("torque labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = colors[i]
	}
	labels.Offset = vg.Point{X: -px(40), Y: px(30)}
	p.Add(labels)
	return nil
}

func addJoints(p *plot.Plot, f arm.JointFrame, pal view.Palette) error {
	base, err := plotter.NewScatter(polyline(f.M1))
	if err != nil {
		return fmt.Errorf("base joint: %w", err)
	}
	base.GlyphStyle = draw.GlyphStyle{Color: pal.Joint, Radius: px(baseRadius), Shape: draw.CircleGlyph{}}
	p.Add(base)

	joints, err := plotter.NewScatter(polyline(f.M2, f.M3))
	if err != nil {
		return fmt.Errorf("joints: %w", err)
	}
	joints.GlyphStyle = draw.GlyphStyle{Color: pal.Joint, Radius: px(jointRadius), Shape: draw.CircleGlyph{}}
	p.Add(joints)

	load, err := plotter.NewScatter(polyline(f.Load))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	load.GlyphStyle = draw.GlyphStyle{Color: pal.Load, Radius: px(loadHalf), Shape: draw.BoxGlyph{}}
	p.Add(load)
	return nil
}

func addJointLabels(p *plot.Plot, f arm.JointFrame, pal view.Palette) error {
	names := arm.AllJoints()
	pts := make([]arm.Point, len(names))
	texts := make([]string, len(names))
	for i, j := range names {
		pts[i] = f.At(j)
		texts[i] = string(j)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: polyline(pts...), Labels: texts})
	if err != nil {
		return fmt.Errorf("joint labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = pal.Text
	}
	labels.Offset = vg.Point{X: -px(20), Y: px(15)}
	p.Add(labels)
	return nil
}

// Format returns the encoder name for a file extension or format string
// ("svg", ".png", "PDF").
func Format(s string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(s, "."))
	switch f {
	case "svg", "png", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// WriteTo encodes p at the viewport's pixel size.
func WriteTo(w io.Writer, p *plot.Plot, vp view.Viewport, format string) error {
	f, err := Format(format)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(px(vp.Width), px(vp.Height), f)
	if err != nil {
		return fmt.Errorf("creating %s canvas: %w", f, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", f, err)
	}
	return nil
}

// Save writes p to path; the format follows the file extension.
func Save(path string, p *plot.Plot, vp view.Viewport) (err error) {
	format, err := Format(filepath.Ext(path))
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return WriteTo(out, p, vp, format)
}
