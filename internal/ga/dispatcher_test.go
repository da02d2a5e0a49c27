package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_SingleLineupNeverUsesSetBased(t *testing.T) {
	d := Dispatch(DispatchConfig{TargetLineups: 1, Mode: ModeSetBased, PoolSize: 10000})
	assert.False(t, d.UseSetBased)
}

func TestDispatch_PostProcessingModeSkipsSetBased(t *testing.T) {
	d := Dispatch(DispatchConfig{TargetLineups: 5, Mode: ModePostProcessing, PoolSize: 100})
	assert.False(t, d.UseSetBased)
}

func TestDispatch_DefaultsToSetBasedForMultilineup(t *testing.T) {
	d := Dispatch(DispatchConfig{TargetLineups: 5, PoolSize: 100})
	assert.True(t, d.UseSetBased)
}

func TestDispatch_PrefersFingerprintWhenWorkExceedsThreshold(t *testing.T) {
	d := Dispatch(DispatchConfig{TargetLineups: 20, PoolSize: 100})
	assert.True(t, d.PreferFingerprint) // 20*100 = 2000 > 1000

	d2 := Dispatch(DispatchConfig{TargetLineups: 2, PoolSize: 10})
	assert.False(t, d2.PreferFingerprint) // 20 <= 1000
}
