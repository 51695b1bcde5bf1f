package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalForSpeed(t *testing.T) {
	tests := []struct {
		level    int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{50, 51 * time.Millisecond},
		{90, 11 * time.Millisecond},
		{100, time.Millisecond},
		{0, 100 * time.Millisecond},  // clamped
		{500, time.Millisecond},      // clamped
		{-3, 100 * time.Millisecond}, // clamped
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, IntervalForSpeed(tc.level), "level %d", tc.level)
	}
}

func TestPresetsAreOrdered(t *testing.T) {
	prev := 0
	for _, p := range Presets {
		level := LevelForPreset(p)
		assert.Greater(t, level, prev, "preset %s", p)
		prev = level
	}
	assert.Zero(t, LevelForPreset("warp"))
}

func TestParseSpeed(t *testing.T) {
	level, err := ParseSpeed(" Fast ")
	require.NoError(t, err)
	assert.Equal(t, 90, level)

	level, err = ParseSpeed("33")
	require.NoError(t, err)
	assert.Equal(t, 33, level)

	_, err = ParseSpeed("0")
	assert.Error(t, err)
	_, err = ParseSpeed("quick")
	assert.Error(t, err)
}

func TestApplySpeedPreset(t *testing.T) {
	cfg := DefaultMazeConfig()
	require.NoError(t, ApplySpeedPreset(&cfg, ""))
	assert.Equal(t, 90, cfg.Speed.Level)

	require.NoError(t, ApplySpeedPreset(&cfg, SpeedSlow))
	assert.Equal(t, 1, cfg.Speed.Level)
	assert.Equal(t, SpeedSlow, cfg.Speed.Preset)

	assert.Error(t, ApplySpeedPreset(&cfg, "warp"))
}
