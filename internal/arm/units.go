package arm

import (
	"math"
	"math/big"
)

const (
	// Gravity is the fixed gravitational acceleration in m/s².
	Gravity = 9.81

	// NmToKgfCm converts newton-meters to kilogram-force centimeters.
	NmToKgfCm = 10.1972

	// roundPrec keeps v*100+0.5 exact for every |v| below roundLimit.
	roundPrec  = 256
	roundLimit = 1e15
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// CmToM converts centimeters to meters.
func CmToM(cm float64) float64 {
	return cm / 100
}

// Round2 rounds the exact binary value of v to two decimal places, halves away
// from zero. 2.675 is stored as 2.67499999… and rounds to 2.67.
// Values at or above 1e15 have no fractional digits left and are returned as is.
func Round2(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= roundLimit {
		return v
	}

	x := new(big.Float).SetPrec(roundPrec).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(100))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int64() // truncates: floor for x >= 0

	r := float64(n) / 100
	if v < 0 {
		return -r
	}
	return r
}
