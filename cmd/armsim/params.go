package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/armsim/internal/arm"
)

// parseTriple parses "a,b,c" into three finite floats.
func parseTriple(s string) ([3]float64, error) {
	var out [3]float64

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("expected 3 comma separated values, got %d in %q", len(parts), s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("parsing %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func formatTriple(a, b, c float64) string {
	return strconv.FormatFloat(a, 'g', -1, 64) + "," +
		strconv.FormatFloat(b, 'g', -1, 64) + "," +
		strconv.FormatFloat(c, 'g', -1, 64)
}

// anglesFlag implements flag.Value over an arm.AngleSet.
type anglesFlag struct{ set *arm.AngleSet }

func (f *anglesFlag) String() string {
	if f.set == nil {
		return ""
	}
	return formatTriple(f.set.L1, f.set.L2, f.set.L3)
}

func (f *anglesFlag) Set(s string) error {
	v, err := parseTriple(s)
	if err != nil {
		return err
	}
	*f.set = arm.AngleSet{L1: v[0], L2: v[1], L3: v[2]}
	return nil
}

// lengthsFlag implements flag.Value over an arm.LinkSet.
type lengthsFlag struct{ set *arm.LinkSet }

func (f *lengthsFlag) String() string {
	if f.set == nil {
		return ""
	}
	return formatTriple(f.set.L1, f.set.L2, f.set.L3)
}

func (f *lengthsFlag) Set(s string) error {
	v, err := parseTriple(s)
	if err != nil {
		return err
	}
	*f.set = arm.LinkSet{L1: v[0], L2: v[1], L3: v[2]}
	return nil
}

// massesFlag implements flag.Value over an arm.MassSet (M2, M3, LOAD).
type massesFlag struct{ set *arm.MassSet }

func (f *massesFlag) String() string {
	if f.set == nil {
		return ""
	}
	return formatTriple(f.set.M2, f.set.M3, f.set.Load)
}

func (f *massesFlag) Set(s string) error {
	v, err := parseTriple(s)
	if err != nil {
		return err
	}
	*f.set = arm.MassSet{M2: v[0], M3: v[1], Load: v[2]}
	return nil
}
