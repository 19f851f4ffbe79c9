package arm

import "math"

// ResolveFrame computes the position of every joint from link lengths and angles.
//
// Each angle is absolute (measured from the global +x axis), not relative to the
// previous link: the arm is three independently angled vectors summed head to tail.
// Y is negated so that a positive angle raises the arm on a screen whose y axis
// points down. M1 is always the origin.
//
// Any finite input is valid, including zero lengths and angles outside ±90°.
func ResolveFrame(lengths LinkSet, angles AngleSet) JointFrame {
	var frame JointFrame
	frame.M2 = frame.M1.Add(segment(lengths.L1, angles.L1))
	frame.M3 = frame.M2.Add(segment(lengths.L2, angles.L2))
	frame.Load = frame.M3.Add(segment(lengths.L3, angles.L3))
	return frame
}

// segment returns the screen-space vector of a link of the given length at deg degrees.
func segment(length, deg float64) Point {
	rad := DegToRad(deg)
	return Point{
		X: math.Cos(rad) * length,
		Y: -math.Sin(rad) * length,
	}
}
