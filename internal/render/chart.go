package render

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/sweep"
)

// SweepChart plots the Nm torque of every actuated joint across a sweep.
// M1 is red, M2 blue, M3 magenta.
func SweepChart(res sweep.Result, width, height int) string {
	if len(res.Samples) == 0 {
		return ""
	}

	series := make([][]float64, 0, 3)
	for _, j := range arm.ActuatedJoints() {
		series = append(series, res.Series(j))
	}

	first, last := res.Samples[0].Angle, res.Samples[len(res.Samples)-1].Angle
	caption := fmt.Sprintf("torque (Nm) vs %s angle %g°..%g° | peak M1 %.2f M2 %.2f M3 %.2f",
		res.Link, first, last, res.Peak[arm.M1], res.Peak[arm.M2], res.Peak[arm.M3])

	return asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Magenta),
		asciigraph.Caption(caption),
	)
}
