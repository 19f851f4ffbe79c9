package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/config"
	"github.com/udisondev/armsim/internal/render"
	"github.com/udisondev/armsim/internal/sweep"
	"github.com/udisondev/armsim/internal/view"
	"github.com/udisondev/armsim/internal/web"
)

var ErrUnknownCommand = errors.New("unknown command")

type command struct {
	name string
	desc string
	run  func(ctx context.Context, cfg config.Armsim, args []string, stdout io.Writer) error
}

var commands []command

func registerCommand(name, desc string, fn func(ctx context.Context, cfg config.Armsim, args []string, stdout io.Writer) error) {
	commands = append(commands, command{name: name, desc: desc, run: fn})
}

func init() {
	registerCommand("report", "Print joint torques and coordinates (default)", runReport)
	registerCommand("render", "Draw the arm figure to an svg/png/pdf file", runRender)
	registerCommand("sweep", "Sweep one link angle and chart the torques", runSweep)
	registerCommand("serve", "Serve the interactive browser UI", runServe)
}

// lookupCommand picks the subcommand from args. Without one (or when args start
// with a flag) the report command runs.
func lookupCommand(args []string) (command, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return commands[0], args, nil
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c, args[1:], nil
		}
	}
	return command{}, nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCommand, args[0], commandNames())
}

func commandNames() string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return strings.Join(names, ", ")
}

// newFlagSet returns a flag set bound to cfg.Arm through the -angles, -lengths
// and -masses overrides.
func newFlagSet(name string, cfg *config.Armsim) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Var(&anglesFlag{&cfg.Arm.Angles}, "angles", "link angles L1,L2,L3 in degrees")
	fs.Var(&lengthsFlag{&cfg.Arm.Lengths}, "lengths", "link lengths L1,L2,L3 in cm")
	fs.Var(&massesFlag{&cfg.Arm.Masses}, "masses", "masses M2,M3,LOAD in kg")
	return fs
}

func runReport(_ context.Context, cfg config.Armsim, args []string, stdout io.Writer) error {
	fs := newFlagSet("report", &cfg)
	asJSON := fs.Bool("json", false, "print the snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.CheckParams(cfg.Arm); err != nil {
		return err
	}

	snap := view.NewSession(cfg).Snapshot()
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	_, err := fmt.Fprintln(stdout, render.Report(snap))
	return err
}

func runRender(_ context.Context, cfg config.Armsim, args []string, stdout io.Writer) error {
	fs := newFlagSet("render", &cfg)
	out := fs.String("o", "arm.svg", "output file; the extension selects svg, png or pdf")
	zoom := fs.Int("zoom", 0, "zoom steps (negative zooms out)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.CheckParams(cfg.Arm); err != nil {
		return err
	}

	session := view.NewSession(cfg)
	for range max(*zoom, -*zoom) {
		if *zoom > 0 {
			session.ZoomIn()
		} else {
			session.ZoomOut()
		}
	}

	snap, vp := session.State()
	p, err := render.Figure(snap, vp, view.DefaultPalette())
	if err != nil {
		return fmt.Errorf("building figure: %w", err)
	}
	if err := render.Save(*out, p, vp); err != nil {
		return err
	}

	slog.Info("figure saved", "path", *out)
	_, err = fmt.Fprintln(stdout, *out)
	return err
}

func runSweep(ctx context.Context, cfg config.Armsim, args []string, stdout io.Writer) error {
	fs := newFlagSet("sweep", &cfg)
	links := fs.String("link", "L1", "link(s) to sweep, comma separated")
	from := fs.Float64("from", cfg.Bounds.Angle.Min, "start angle, degrees")
	to := fs.Float64("to", cfg.Bounds.Angle.Max, "end angle, degrees")
	step := fs.Float64("step", 5, "angle step, degrees")
	width := fs.Int("width", 60, "chart width in columns")
	height := fs.Int("height", 12, "chart height in rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.CheckParams(cfg.Arm); err != nil {
		return err
	}

	var reqs []sweep.Request
	for name := range strings.SplitSeq(*links, ",") {
		l, err := arm.ParseLink(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		reqs = append(reqs, sweep.Request{Link: l, From: *from, To: *to, Step: *step})
	}

	results, err := sweep.RunAll(ctx, cfg, reqs)
	if err != nil {
		return err
	}

	for _, res := range results {
		if _, err := fmt.Fprintf(stdout, "%s\n\n", render.SweepChart(res, *width, *height)); err != nil {
			return err
		}
	}
	return nil
}

func runServe(ctx context.Context, cfg config.Armsim, args []string, _ io.Writer) error {
	fs := newFlagSet("serve", &cfg)
	addr := fs.String("bind", cfg.Server.BindAddress, "bind address")
	port := fs.Int("port", cfg.Server.Port, "listen port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Server.BindAddress = *addr
	cfg.Server.Port = *port
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting web server", "address", cfg.Server.Addr())
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
