package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	for in, want := range map[string]Phase{
		"base":    PhaseBase,
		" Build ": PhaseBuild,
		"PEAK":    PhasePeak,
		"taper":   PhaseTaper,
	} {
		got, ok := ParsePhase(in)
		require.True(t, ok, in)
		require.Equal(t, want, got)
	}

	for _, in := range []string{"", "recovery", "base build"} {
		_, ok := ParsePhase(in)
		require.False(t, ok, in)
	}
}

func TestAthleteFullName(t *testing.T) {
	require.Equal(t, "Adam Cole", (&Athlete{FirstName: "Adam", LastName: "Cole"}).FullName())
	require.Equal(t, "Adam", (&Athlete{FirstName: "Adam"}).FullName())
	require.Equal(t, "Cole", (&Athlete{LastName: "Cole"}).FullName())
}
