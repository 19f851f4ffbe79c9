package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/config"
	"github.com/udisondev/armsim/internal/view"
)

const (
	linkWidth   = 6
	jointRadius = 10
	baseRadius  = 12
	loadHalf    = 12
	ringOuter   = 25
	ringStep    = 4
	ringDashes  = 24
	gridCm      = 10

	// Held keys repeat after repeatDelay ticks, every repeatEvery ticks.
	repeatDelay = 20
	repeatEvery = 3
)

var (
	background = color.RGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}
	gridColor  = color.RGBA{R: 0x2E, G: 0x2E, B: 0x2E, A: 0xFF}
	axisColor  = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
)

// game implements ebiten.Game on top of a view.Session.
type game struct {
	cfg      config.Armsim
	session  *view.Session
	palette  view.Palette
	selected arm.Link
}

func newGame(cfg config.Armsim, s *view.Session, pal view.Palette) *game {
	return &game{cfg: cfg, session: s, palette: pal, selected: arm.L1}
}

// pressed reports a fresh press or an auto-repeat of a held key.
func pressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= repeatDelay && d%repeatEvery == 0)
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for key, link := range map[ebiten.Key]arm.Link{ebiten.Key1: arm.L1, ebiten.Key2: arm.L2, ebiten.Key3: arm.L3} {
		if inpututil.IsKeyJustPressed(key) {
			g.selected = link
		}
	}

	p := g.session.Params()
	switch {
	case pressed(ebiten.KeyArrowLeft):
		g.set(view.Angles, p.Angles.Get(g.selected)-1)
	case pressed(ebiten.KeyArrowRight):
		g.set(view.Angles, p.Angles.Get(g.selected)+1)
	case pressed(ebiten.KeyArrowUp):
		g.set(view.Lengths, p.Lengths.Get(g.selected)+1)
	case pressed(ebiten.KeyArrowDown):
		g.set(view.Lengths, p.Lengths.Get(g.selected)-1)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.session.ZoomIn()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.session.ZoomOut()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.Reset()
	}

	if _, dy := ebiten.Wheel(); dy > 0 {
		g.session.ZoomIn()
	} else if dy < 0 {
		g.session.ZoomOut()
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.session.BeginDrag(float64(x), float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.session.EndDrag()
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.session.DragTo(float64(x), float64(y))
	}

	return nil
}

func (g *game) set(c view.Category, v float64) {
	if err := g.session.Set(c, string(g.selected), v); err != nil {
		slog.Warn("rejected input", "category", c, "link", g.selected, "err", err)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	snap, vp := g.session.State()

	screen.Fill(background)
	g.drawGrid(screen, vp)
	g.drawBase(screen, vp)
	g.drawLinks(screen, snap.Frame, vp)
	g.drawRings(screen, snap, vp)
	g.drawJoints(screen, snap.Frame, vp)
	g.drawHUD(screen, snap)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.View.Width, g.cfg.View.Height
}

func (g *game) drawGrid(screen *ebiten.Image, vp view.Viewport) {
	tl := vp.ToWorld(0, 0)
	br := vp.ToWorld(vp.Width, vp.Height)

	for cx := math.Ceil(tl.X/gridCm) * gridCm; cx <= br.X; cx += gridCm {
		x, _ := vp.ToScreen(arm.Point{X: cx})
		clr := gridColor
		if cx == 0 {
			clr = axisColor
		}
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(vp.Height), 1, clr, false)
	}
	for cy := math.Ceil(tl.Y/gridCm) * gridCm; cy <= br.Y; cy += gridCm {
		_, y := vp.ToScreen(arm.Point{Y: cy})
		clr := gridColor
		if cy == 0 {
			clr = axisColor
		}
		vector.StrokeLine(screen, 0, float32(y), float32(vp.Width), float32(y), 1, clr, false)
	}
}

func (g *game) drawBase(screen *ebiten.Image, vp view.Viewport) {
	x, y := vp.ToScreen(arm.Point{})
	vector.DrawFilledRect(screen, float32(x-50), float32(y-10), 80, 30, g.palette.Base, false)
}

func (g *game) drawLinks(screen *ebiten.Image, f arm.JointFrame, vp view.Viewport) {
	ends := [][2]arm.Point{{f.M1, f.M2}, {f.M2, f.M3}, {f.M3, f.Load}}
	for i, l := range arm.Links() {
		x0, y0 := vp.ToScreen(ends[i][0])
		x1, y1 := vp.ToScreen(ends[i][1])
		width := float32(linkWidth)
		if l == g.selected {
			width += 2
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, g.palette.Links[l], true)
	}
}

// drawRings draws a dashed ring in the torque color around each actuated joint.
func (g *game) drawRings(screen *ebiten.Image, snap view.Snapshot, vp view.Viewport) {
	for i, j := range arm.ActuatedJoints() {
		cx, cy := vp.ToScreen(snap.Frame.At(j))
		r := float64(ringOuter - i*ringStep)
		clr := snap.Colors[j]

		for k := range ringDashes {
			a0 := 2 * math.Pi * float64(k) / ringDashes
			a1 := a0 + math.Pi/ringDashes
			vector.StrokeLine(screen,
				float32(cx+r*math.Cos(a0)), float32(cy+r*math.Sin(a0)),
				float32(cx+r*math.Cos(a1)), float32(cy+r*math.Sin(a1)),
				3, clr, true)
		}

		label := snap.Torques.At(j).FormatKgfCm() + " kgf·cm"
		ebitenutil.DebugPrintAt(screen, label, int(cx)-40, int(cy)-int(r)-18)
	}
}

func (g *game) drawJoints(screen *ebiten.Image, f arm.JointFrame, vp view.Viewport) {
	x, y := vp.ToScreen(f.M1)
	vector.DrawFilledCircle(screen, float32(x), float32(y), baseRadius, g.palette.Joint, true)
	ebitenutil.DebugPrintAt(screen, string(arm.M1), int(x)-20, int(y)-25)

	for _, j := range []arm.Joint{arm.M2, arm.M3} {
		x, y := vp.ToScreen(f.At(j))
		vector.DrawFilledCircle(screen, float32(x), float32(y), jointRadius, g.palette.Joint, true)
		ebitenutil.DebugPrintAt(screen, string(j), int(x)-20, int(y)-25)
	}

	x, y = vp.ToScreen(f.Load)
	vector.DrawFilledRect(screen, float32(x-loadHalf), float32(y-loadHalf), 2*loadHalf, 2*loadHalf, g.palette.Load, true)
}

func (g *game) drawHUD(screen *ebiten.Image, snap view.Snapshot) {
	p := snap.Params
	hud := fmt.Sprintf("M1 %s  M2 %s  M3 %s\nlink %s: %.0f deg, %.0f cm   zoom %d%%",
		snap.Torques.M1, snap.Torques.M2, snap.Torques.M3,
		g.selected, p.Angles.Get(g.selected), p.Lengths.Get(g.selected), snap.ZoomPercent())
	ebitenutil.DebugPrintAt(screen, hud, 4, 4)
}
