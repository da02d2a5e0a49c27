package ga

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiler_DisabledIsZeroOverheadNoOp(t *testing.T) {
	p := NewProfiler(false)
	p.StartOptimization()
	p.StartGeneration(1)
	p.EndGeneration()
	p.EndOptimization()

	summary := p.Summary()
	require.NotNil(t, summary)
	assert.False(t, summary.Enabled)
}

func TestProfiler_TracksGenerationTimings(t *testing.T) {
	p := NewProfiler(true)
	p.StartOptimization()
	p.MarkSetupComplete()

	for gen := 1; gen <= 3; gen++ {
		p.StartGeneration(gen)
		time.Sleep(time.Millisecond)
		p.EndGeneration()
	}
	p.MarkBestSolution(2)
	p.EndOptimization()

	summary := p.Summary()
	assert.True(t, summary.Enabled)
	assert.Equal(t, 3, summary.GenerationsCompleted)
	assert.Equal(t, 2, summary.BestSolutionGeneration)
	assert.Greater(t, summary.TotalTime, time.Duration(0))
}

func TestProfiler_TimeOperationRecordsStats(t *testing.T) {
	p := NewProfiler(true)
	for i := 0; i < 3; i++ {
		p.TimeOperation("validate", func() { time.Sleep(time.Millisecond) })
	}
	summary := p.Summary()
	stats, ok := summary.Operations["validate"]
	require.True(t, ok)
	assert.Equal(t, 3, stats.CallCount)
	assert.Greater(t, stats.TotalTime, time.Duration(0))
}
