// Command armsim computes the holding torques of a 3-link planar arm.
//
// Usage:
//
//	armsim [report] [-angles 45,0,-45] [-lengths 25,25,10] [-masses 1,0.5,0.5]
//	armsim render -o arm.svg          # also .png, .pdf
//	armsim sweep -link L1 -from -90 -to 90 -step 5
//	armsim serve                      # browser UI on server.bind_address:server.port
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/armsim/internal/config"
)

const ConfigPath = "config/armsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ARMSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArmsim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout is reserved for command output
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))
	slog.Debug("config loaded", "path", cfgPath, "params", cfg.Arm)

	cmd, rest, err := lookupCommand(args)
	if err != nil {
		return err
	}
	return cmd.run(ctx, cfg, rest, stdout)
}
