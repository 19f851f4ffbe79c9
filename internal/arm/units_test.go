package arm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegToRad(t *testing.T) {
	assert.Equal(t, 0.0, DegToRad(0))
	assert.InDelta(t, math.Pi/4, DegToRad(45), 1e-15)
	assert.InDelta(t, -math.Pi/2, DegToRad(-90), 1e-15)
}

func TestCmToM(t *testing.T) {
	assert.Equal(t, 0.25, CmToM(25))
	assert.Equal(t, -0.1, CmToM(-10))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.234, 1.23},
		{1.235001, 1.24},
		{63.912935, 63.91},
		{-17.677669, -17.68},
		// exact binary value decides, not the product v*100
		{2.675, 2.67},
		{1.005, 1.0},
		{14.715, 14.71},
		// exact halves go away from zero
		{0.125, 0.13},
		{-0.125, -0.13},
		{1e15, 1e15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}

	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(-1)), -1))
}

func TestParseJoint(t *testing.T) {
	for _, j := range AllJoints() {
		got, err := ParseJoint(string(j))
		require.NoError(t, err)
		assert.Equal(t, j, got)
	}

	_, err := ParseJoint("M4")
	assert.True(t, errors.Is(err, ErrUnknownJoint))
}

func TestParseLink(t *testing.T) {
	for _, l := range Links() {
		got, err := ParseLink(string(l))
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ParseLink("l1")
	assert.ErrorIs(t, err, ErrUnknownLink)
}

func TestSets_GetWith(t *testing.T) {
	lengths := LinkSet{L1: 1, L2: 2, L3: 3}.With(L2, 20)
	assert.Equal(t, LinkSet{L1: 1, L2: 20, L3: 3}, lengths)
	assert.Equal(t, 20.0, lengths.Get(L2))

	angles := AngleSet{}.With(L3, -45)
	assert.Equal(t, -45.0, angles.Get(L3))
	assert.Equal(t, 0.0, angles.Get(Link("L9")))

	masses := MassSet{M2: 1}.With(M1, 9).With(Load, 0.5)
	assert.Equal(t, MassSet{M2: 1, Load: 0.5}, masses)
	assert.Equal(t, 0.0, masses.Get(M1))
}
