// Package sweep replays angle sweeps through a view session, the way a user
// dragging a slider from one end to the other would.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/config"
	"github.com/udisondev/armsim/internal/view"
)

// MaxSteps caps the number of samples of a single sweep.
const MaxSteps = 10000

var ErrInvalidRequest = errors.New("invalid sweep request")

// Request describes a sweep of one link angle from From to To (degrees, inclusive).
type Request struct {
	Link arm.Link
	From float64
	To   float64
	Step float64
}

// Validate checks that the request describes a finite, bounded sweep.
func (r Request) Validate() error {
	if _, err := arm.ParseLink(string(r.Link)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	for _, v := range []float64{r.From, r.To, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidRequest)
		}
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step %g must be positive", ErrInvalidRequest, r.Step)
	}
	if r.From > r.To {
		return fmt.Errorf("%w: from %g > to %g", ErrInvalidRequest, r.From, r.To)
	}
	if n := (r.To-r.From)/r.Step + 1; n > MaxSteps {
		return fmt.Errorf("%w: %d steps exceeds %d", ErrInvalidRequest, int(n), MaxSteps)
	}
	return nil
}

// Angles lists the sampled angles. To is included when it falls on a step.
func (r Request) Angles() []float64 {
	n := int(math.Floor((r.To-r.From)/r.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = r.From + float64(i)*r.Step
	}
	return out
}

// Sample is the arm state at one sweep position.
type Sample struct {
	Angle   float64          `json:"angle"`
	Frame   arm.JointFrame   `json:"frame"`
	Torques arm.TorqueResult `json:"torques"`
}

// Result holds every sample of a sweep and the session's running max at the end.
// Peak includes the starting configuration, as in an interactive session.
type Result struct {
	Link    arm.Link              `json:"link"`
	Samples []Sample              `json:"samples"`
	Peak    map[arm.Joint]float64 `json:"peak"`
}

// Series returns the Nm torque of joint j at every sample.
func (r Result) Series(j arm.Joint) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Torques.At(j).Nm
	}
	return out
}

// Run sweeps one link angle in a fresh session started from cfg.
// Angles beyond cfg.Bounds are clamped by the session; Sample.Angle holds the applied value.
func Run(ctx context.Context, cfg config.Armsim, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	s := view.NewSession(cfg)
	res := Result{Link: req.Link}

	for _, a := range req.Angles() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := s.Set(view.Angles, string(req.Link), a); err != nil {
			return Result{}, fmt.Errorf("setting %s=%g: %w", req.Link, a, err)
		}
		snap := s.Snapshot()
		res.Samples = append(res.Samples, Sample{
			Angle:   snap.Params.Angles.Get(req.Link),
			Frame:   snap.Frame,
			Torques: snap.Torques,
		})
	}

	res.Peak = s.Snapshot().MaxTorque
	return res, nil
}

// RunAll runs several sweeps in parallel, each in its own session.
// Results keep the order of reqs. The first failure cancels the rest.
func RunAll(ctx context.Context, cfg config.Armsim, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := Run(gctx, cfg, req)
			if err != nil {
				return fmt.Errorf("sweep %s: %w", req.Link, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
