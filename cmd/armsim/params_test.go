package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armsim/internal/arm"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]float64
		wantErr bool
	}{
		{in: "45,0,-45", want: [3]float64{45, 0, -45}},
		{in: " 1 , 0.5 ,0.5", want: [3]float64{1, 0.5, 0.5}},
		{in: "1,2", wantErr: true},
		{in: "1,2,3,4", wantErr: true},
		{in: "1,x,3", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTriple(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagValues(t *testing.T) {
	var p arm.Params

	require.NoError(t, (&anglesFlag{&p.Angles}).Set("45,0,-45"))
	require.NoError(t, (&lengthsFlag{&p.Lengths}).Set("25,25,10"))
	require.NoError(t, (&massesFlag{&p.Masses}).Set("1,0.5,0.5"))

	assert.Equal(t, arm.AngleSet{L1: 45, L2: 0, L3: -45}, p.Angles)
	assert.Equal(t, arm.LinkSet{L1: 25, L2: 25, L3: 10}, p.Lengths)
	assert.Equal(t, arm.MassSet{M2: 1, M3: 0.5, Load: 0.5}, p.Masses)

	assert.Equal(t, "45,0,-45", (&anglesFlag{&p.Angles}).String())
	assert.Equal(t, "1,0.5,0.5", (&massesFlag{&p.Masses}).String())
	assert.Empty(t, (&lengthsFlag{}).String())
}
