package arm

import "testing"

// BenchmarkSolve measures kinematics and statics for one configuration.
func BenchmarkSolve(b *testing.B) {
	b.ReportAllocs()

	p := Params{
		Lengths: LinkSet{L1: 25, L2: 25, L3: 10},
		Angles:  AngleSet{L1: 45, L2: 0, L3: -45},
		Masses:  MassSet{M2: 1, M3: 0.5, Load: 0.5},
	}

	b.ResetTimer()
	for range b.N {
		_, _ = Solve(p)
	}
}

// BenchmarkSolve_Sweep drags the L1 angle from -90 to 90 in 1° steps.
func BenchmarkSolve_Sweep(b *testing.B) {
	b.ReportAllocs()

	p := Params{
		Lengths: LinkSet{L1: 25, L2: 25, L3: 10},
		Masses:  MassSet{M2: 1, M3: 0.5, Load: 0.5},
	}

	b.ResetTimer()
	for range b.N {
		for deg := -90; deg <= 90; deg++ {
			p.Angles.L1 = float64(deg)
			_, _ = Solve(p)
		}
	}
}
