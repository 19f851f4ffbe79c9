package arm

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownJoint = errors.New("unknown joint")
	ErrUnknownLink  = errors.New("unknown link")

	// ErrMasslessJoint is returned when a mass is assigned to the base joint M1.
	ErrMasslessJoint = errors.New("joint carries no mass")
)

// Joint identifies a labeled point along the arm.
// M1 is the fixed base actuator, M2 the elbow, M3 the wrist, LOAD the end point.
type Joint string

const (
	M1   Joint = "M1"
	M2   Joint = "M2"
	M3   Joint = "M3"
	Load Joint = "LOAD"
)

// ActuatedJoints returns the joints that carry an actuator, base first.
func ActuatedJoints() []Joint {
	return []Joint{M1, M2, M3}
}

// AllJoints returns every point of a JointFrame in chain order.
func AllJoints() []Joint {
	return []Joint{M1, M2, M3, Load}
}

// MassJoints returns the points that carry a mass.
func MassJoints() []Joint {
	return []Joint{M2, M3, Load}
}

// ParseJoint converts a label ("M1", "LOAD", ...) into a Joint.
func ParseJoint(s string) (Joint, error) {
	switch j := Joint(s); j {
	case M1, M2, M3, Load:
		return j, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownJoint, s)
}

// Link identifies a rigid segment: L1 spans M1→M2, L2 spans M2→M3, L3 spans M3→LOAD.
type Link string

const (
	L1 Link = "L1"
	L2 Link = "L2"
	L3 Link = "L3"
)

// Links returns all links in chain order.
func Links() []Link {
	return []Link{L1, L2, L3}
}

// ParseLink converts a label ("L1", "L2", "L3") into a Link.
func ParseLink(s string) (Link, error) {
	switch l := Link(s); l {
	case L1, L2, L3:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLink, s)
}

// LinkSet holds the three link lengths in centimeters.
type LinkSet struct {
	L1 float64 `yaml:"L1" json:"L1"`
	L2 float64 `yaml:"L2" json:"L2"`
	L3 float64 `yaml:"L3" json:"L3"`
}

// Get returns the length of link l. Unknown links yield 0.
func (s LinkSet) Get(l Link) float64 {
	switch l {
	case L1:
		return s.L1
	case L2:
		return s.L2
	case L3:
		return s.L3
	}
	return 0
}

// With returns a copy of s with link l set to v.
func (s LinkSet) With(l Link, v float64) LinkSet {
	switch l {
	case L1:
		s.L1 = v
	case L2:
		s.L2 = v
	case L3:
		s.L3 = v
	}
	return s
}

// AngleSet holds the three absolute link angles in degrees,
// each measured from the global +x axis.
type AngleSet struct {
	L1 float64 `yaml:"L1" json:"L1"`
	L2 float64 `yaml:"L2" json:"L2"`
	L3 float64 `yaml:"L3" json:"L3"`
}

// Get returns the angle of link l. Unknown links yield 0.
func (s AngleSet) Get(l Link) float64 {
	switch l {
	case L1:
		return s.L1
	case L2:
		return s.L2
	case L3:
		return s.L3
	}
	return 0
}

// With returns a copy of s with the angle of link l set to v.
func (s AngleSet) With(l Link, v float64) AngleSet {
	switch l {
	case L1:
		s.L1 = v
	case L2:
		s.L2 = v
	case L3:
		s.L3 = v
	}
	return s
}

// MassSet holds the point masses in kilograms concentrated at M2, M3 and the load.
type MassSet struct {
	M2   float64 `yaml:"M2" json:"M2"`
	M3   float64 `yaml:"M3" json:"M3"`
	Load float64 `yaml:"LOAD" json:"LOAD"`
}

// Get returns the mass carried at joint j. M1 and unknown joints yield 0.
func (s MassSet) Get(j Joint) float64 {
	switch j {
	case M2:
		return s.M2
	case M3:
		return s.M3
	case Load:
		return s.Load
	}
	return 0
}

// With returns a copy of s with the mass at joint j set to v.
// M1 carries no mass and is ignored.
func (s MassSet) With(j Joint, v float64) MassSet {
	switch j {
	case M2:
		s.M2 = v
	case M3:
		s.M3 = v
	case Load:
		s.Load = v
	}
	return s
}

// Point is a position in centimeters. Y grows downward (screen convention).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// JointFrame holds the resolved position of every point of the arm.
type JointFrame struct {
	M1   Point `json:"M1"`
	M2   Point `json:"M2"`
	M3   Point `json:"M3"`
	Load Point `json:"LOAD"`
}

// At returns the position of joint j. Unknown joints yield the origin.
func (f JointFrame) At(j Joint) Point {
	switch j {
	case M2:
		return f.M2
	case M3:
		return f.M3
	case Load:
		return f.Load
	}
	return f.M1
}

// Torque is a holding-torque magnitude in two units, both rounded to 2 decimals.
type Torque struct {
	Nm    float64 `json:"Nm"`
	KgfCm float64 `json:"kgfcm"`
}

// FormatNm returns the Nm value with exactly two decimals.
func (t Torque) FormatNm() string {
	return fmt.Sprintf("%.2f", t.Nm)
}

// FormatKgfCm returns the kgf·cm value with exactly two decimals.
func (t Torque) FormatKgfCm() string {
	return fmt.Sprintf("%.2f", t.KgfCm)
}

func (t Torque) String() string {
	return t.FormatNm() + " Nm (" + t.FormatKgfCm() + " kgf·cm)"
}

// TorqueResult holds the torque required at each actuated joint.
type TorqueResult struct {
	M1 Torque `json:"M1"`
	M2 Torque `json:"M2"`
	M3 Torque `json:"M3"`
}

// At returns the torque at joint j. LOAD and unknown joints yield zero.
func (r TorqueResult) At(j Joint) Torque {
	switch j {
	case M1:
		return r.M1
	case M2:
		return r.M2
	case M3:
		return r.M3
	}
	return Torque{}
}

// Params is a complete arm configuration.
type Params struct {
	Lengths LinkSet  `yaml:"lengths" json:"lengths"`
	Angles  AngleSet `yaml:"angles" json:"angles"`
	Masses  MassSet  `yaml:"masses" json:"masses"`
}
