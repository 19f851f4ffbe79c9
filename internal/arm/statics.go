package arm

import "math"

// ResolveTorques computes the static gravitational holding torque at each
// actuated joint.
//
// Each joint holds every mass at or beyond it along the chain; the moment arm is
// the horizontal (x) distance between the mass and the joint, converted to meters.
// Only the magnitude is reported. lengths is part of the call contract but the
// frame already carries all geometry the model needs.
//
// Inputs must be finite.
func ResolveTorques(frame JointFrame, masses MassSet, lengths LinkSet) TorqueResult {
	x1 := CmToM(frame.M1.X)
	x2 := CmToM(frame.M2.X)
	x3 := CmToM(frame.M3.X)
	xl := CmToM(frame.Load.X)

	tauM3 := masses.Load * Gravity * (xl - x3)

	tauM2 := masses.M3*Gravity*(x3-x2) +
		masses.Load*Gravity*(xl-x2)

	tauM1 := masses.M2*Gravity*(x2-x1) +
		masses.M3*Gravity*(x3-x1) +
		masses.Load*Gravity*(xl-x1)

	return TorqueResult{
		M1: NewTorque(tauM1),
		M2: NewTorque(tauM2),
		M3: NewTorque(tauM3),
	}
}

// NewTorque builds a Torque from a signed value in Nm.
// Both units derive from the unrounded magnitude and are then rounded to 2 decimals.
func NewTorque(signedNm float64) Torque {
	mag := math.Abs(signedNm)
	return Torque{
		Nm:    Round2(mag),
		KgfCm: Round2(mag * NmToKgfCm),
	}
}

// Solve runs both resolvers on p.
func Solve(p Params) (JointFrame, TorqueResult) {
	frame := ResolveFrame(p.Lengths, p.Angles)
	return frame, ResolveTorques(frame, p.Masses, p.Lengths)
}
