package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFingerprint_IsDeterministic(t *testing.T) {
	row := Lineup{1, 2, 3, 4, 5, 6}
	a := ComputeFingerprint(row)
	b := ComputeFingerprint(row)
	assert.Equal(t, a, b)
}

func TestComputeFingerprint_DiffersForDifferentLineups(t *testing.T) {
	a := ComputeFingerprint(Lineup{1, 2, 3, 4, 5, 6})
	b := ComputeFingerprint(Lineup{10, 20, 30, 40, 50, 60})
	assert.NotEqual(t, a, b)
}

func TestFingerprintClusters_AllRowsAssigned(t *testing.T) {
	lp := make([]Lineup, 0, 50)
	for i := 0; i < 50; i++ {
		lp = append(lp, Lineup{PlayerID(i), PlayerID(i + 1), PlayerID(i + 2)})
	}
	clusters := FingerprintClusters(lp, 10)
	total := 0
	for _, c := range clusters {
		total += len(c)
	}
	assert.Equal(t, 50, total)
}

func TestSampleDiverseSets_ReturnsKSetsOfNLineups(t *testing.T) {
	lp := make([]Lineup, 0, 200)
	for i := 0; i < 200; i++ {
		lp = append(lp, Lineup{PlayerID(i), PlayerID(i + 1), PlayerID(i + 2)})
	}
	sets := SampleDiverseSets(lp, 5, 4, 20, newRand(1))
	require.Len(t, sets, 5)
	for _, set := range sets {
		assert.Len(t, set, 4)
	}
}

func TestSampleDiverseSets_FallsBackToUniformWhenTooFewClusters(t *testing.T) {
	lp := []Lineup{{1, 2, 3}, {4, 5, 6}}
	sets := SampleDiverseSets(lp, 3, 5, 100, newRand(2))
	require.Len(t, sets, 3)
	for _, set := range sets {
		assert.Len(t, set, 5)
	}
}
