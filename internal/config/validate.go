package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/armsim/internal/arm"
)

// CheckFinite returns ErrNonFinite for NaN and ±Inf.
func CheckFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", field, ErrNonFinite)
	}
	return nil
}

// CheckRange returns ErrNonFinite or ErrOutOfRange when v does not fit r.
func CheckRange(field string, v float64, r Range) error {
	if err := CheckFinite(field, v); err != nil {
		return err
	}
	if !r.Contains(v) {
		return fmt.Errorf("%s=%g not in [%g, %g]: %w", field, v, r.Min, r.Max, ErrOutOfRange)
	}
	return nil
}

// CheckParams reports every non-finite value of p. Bounds are not checked:
// the resolvers are defined for any finite input.
func CheckParams(p arm.Params) error {
	var errs []error
	for _, l := range arm.Links() {
		errs = append(errs,
			CheckFinite("lengths."+string(l), p.Lengths.Get(l)),
			CheckFinite("angles."+string(l), p.Angles.Get(l)),
		)
	}
	for _, j := range arm.MassJoints() {
		errs = append(errs, CheckFinite("masses."+string(j), p.Masses.Get(j)))
	}
	return errors.Join(errs...)
}

// Validate checks the whole configuration. All problems are reported at once.
func (c Armsim) Validate() error {
	var errs []error

	for _, r := range []struct {
		name string
		r    Range
	}{
		{"bounds.angle", c.Bounds.Angle},
		{"bounds.lengths.L1", c.Bounds.Lengths.L1},
		{"bounds.lengths.L2", c.Bounds.Lengths.L2},
		{"bounds.lengths.L3", c.Bounds.Lengths.L3},
		{"bounds.mass", c.Bounds.Mass},
	} {
		if err := errors.Join(CheckFinite(r.name+".min", r.r.Min), CheckFinite(r.name+".max", r.r.Max)); err != nil {
			errs = append(errs, err)
			continue
		}
		if r.r.Min > r.r.Max {
			errs = append(errs, fmt.Errorf("%s: min %g > max %g: %w", r.name, r.r.Min, r.r.Max, ErrOutOfRange))
		}
	}

	p := c.Arm
	for _, l := range arm.Links() {
		errs = append(errs,
			CheckRange("arm.lengths."+string(l), p.Lengths.Get(l), c.Bounds.Length(l)),
			CheckRange("arm.angles."+string(l), p.Angles.Get(l), c.Bounds.Angle),
		)
	}
	for _, j := range arm.MassJoints() {
		errs = append(errs, CheckRange("arm.masses."+string(j), p.Masses.Get(j), c.Bounds.Mass))
	}

	errs = append(errs, c.View.validate(), c.Server.validate())

	return errors.Join(errs...)
}

func (v ViewConfig) validate() error {
	switch {
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("view size %dx%d: %w", v.Width, v.Height, ErrInvalidView)
	case !(v.Scale > 0):
		return fmt.Errorf("view scale %g: %w", v.Scale, ErrInvalidView)
	case !(v.ZoomMin > 0) || v.ZoomMin > v.ZoomMax:
		return fmt.Errorf("view zoom range [%g, %g]: %w", v.ZoomMin, v.ZoomMax, ErrInvalidView)
	case !(v.ZoomStep > 0):
		return fmt.Errorf("view zoom step %g: %w", v.ZoomStep, ErrInvalidView)
	}
	return nil
}

func (s ServerConfig) validate() error {
	switch {
	case s.Port < 0 || s.Port > 65535:
		return fmt.Errorf("server port %d: %w", s.Port, ErrInvalidServer)
	case s.SessionTTL <= 0:
		return fmt.Errorf("server session_ttl %v: %w", s.SessionTTL, ErrInvalidServer)
	case s.CleanupInterval <= 0:
		return fmt.Errorf("server cleanup_interval %v: %w", s.CleanupInterval, ErrInvalidServer)
	}
	return nil
}
