package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Speed level bounds.
const (
	MinSpeed = 1
	MaxSpeed = 100
)

// IntervalForSpeed maps a speed level to an autoplay interval.
// Level 1 waits 100ms between steps, level 100 waits 1ms.
func IntervalForSpeed(level int) time.Duration {
	level = clamp(level, MinSpeed, MaxSpeed)
	return time.Duration(MaxSpeed+1-level) * time.Millisecond
}

// LevelForPreset returns the speed level for a preset, or 0 for an unknown one.
func LevelForPreset(preset SpeedPreset) int {
	switch preset {
	case SpeedSlow:
		return 1
	case SpeedNormal:
		return 50
	case SpeedFast:
		return 90
	case SpeedMax:
		return MaxSpeed
	default:
		return 0
	}
}

// ParseSpeed accepts either a preset name or a numeric level.
func ParseSpeed(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if level := LevelForPreset(SpeedPreset(s)); level > 0 {
		return level, nil
	}
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: unknown speed %q (want 1-100 or slow, normal, fast, max)", s)
	}
	if level < MinSpeed || level > MaxSpeed {
		return 0, fmt.Errorf("config: speed %d out of range %d-%d", level, MinSpeed, MaxSpeed)
	}
	return level, nil
}

// ApplySpeedPreset sets the speed level from a preset.
// An empty preset leaves the config unchanged.
func ApplySpeedPreset(cfg *MazeConfig, preset SpeedPreset) error {
	if preset == "" {
		return nil
	}
	level := LevelForPreset(preset)
	if level == 0 {
		return fmt.Errorf("config: unknown speed preset %q", preset)
	}
	cfg.Speed.Preset = preset
	cfg.Speed.Level = level
	return nil
}

// EffectiveLevel returns the speed level, honoring a preset when one is set.
func (s SpeedConfig) EffectiveLevel() int {
	if level := LevelForPreset(s.Preset); level > 0 {
		return level
	}
	return clamp(s.Level, MinSpeed, MaxSpeed)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
