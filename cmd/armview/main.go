// Command armview opens a desktop window with the interactive arm canvas.
//
// Keys: 1/2/3 select a link, ←/→ change its angle, ↑/↓ its length,
// +/− zoom, R resets the view. Drag with the left button to pan, wheel to zoom.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/udisondev/armsim/internal/config"
	"github.com/udisondev/armsim/internal/view"
)

const ConfigPath = "config/armsim.yaml"

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(_ context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ARMSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArmsim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))
	slog.Info("armview starting", "width", cfg.View.Width, "height", cfg.View.Height)

	g := newGame(cfg, view.NewSession(cfg), view.DefaultPalette())

	ebiten.SetWindowTitle("Arm torque simulator")
	ebiten.SetWindowSize(cfg.View.Width*2, cfg.View.Height*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	slog.Info("armview stopped")
	return nil
}
