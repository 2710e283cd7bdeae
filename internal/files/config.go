package files

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jakobkreft/caketimer/internal/achieve"
	"github.com/jakobkreft/caketimer/internal/timeline"
)

// Config holds the tunable thresholds, read from an optional config.yaml
// in the state directory. Anything missing or out of range falls back to
// the built-in defaults.
type Config struct {
	GoalMinutes            int    `yaml:"goal_minutes"`
	MinSessionSeconds      int    `yaml:"min_session_seconds"`
	DeleteThresholdSeconds int    `yaml:"delete_threshold_seconds"`
	DragMinSeconds         int    `yaml:"drag_min_seconds"`
	EarlyBird              string `yaml:"early_bird"`
	SolidHourMinutes       int    `yaml:"solid_hour_minutes"`
	DeepWorkMinutes        int    `yaml:"deep_work_minutes"`
	BadgeHistoryCap        int    `yaml:"badge_history_cap"`
}

// DefaultConfig returns the thresholds the app ships with.
func DefaultConfig() Config {
	return Config{
		GoalMinutes:            timeline.DefaultGoalMinutes,
		MinSessionSeconds:      15,
		DeleteThresholdSeconds: 5,
		DragMinSeconds:         1,
		EarlyBird:              "07:30",
		SolidHourMinutes:       60,
		DeepWorkMinutes:        180,
		BadgeHistoryCap:        60,
	}
}

// LoadConfig reads the yaml config at path. An absent or unreadable file,
// or one that fails to parse, yields the defaults; individual fields that
// parse but fall out of range are reset field by field.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}

	def := DefaultConfig()
	if cfg.GoalMinutes < 0 || cfg.GoalMinutes > timeline.MaxGoalMinutes {
		cfg.GoalMinutes = def.GoalMinutes
	}
	if cfg.MinSessionSeconds <= 0 {
		cfg.MinSessionSeconds = def.MinSessionSeconds
	}
	if cfg.DeleteThresholdSeconds <= 0 {
		cfg.DeleteThresholdSeconds = def.DeleteThresholdSeconds
	}
	if cfg.DragMinSeconds <= 0 {
		cfg.DragMinSeconds = def.DragMinSeconds
	}
	if _, ok := parseClock(cfg.EarlyBird); !ok {
		cfg.EarlyBird = def.EarlyBird
	}
	if cfg.SolidHourMinutes <= 0 {
		cfg.SolidHourMinutes = def.SolidHourMinutes
	}
	if cfg.DeepWorkMinutes <= 0 {
		cfg.DeepWorkMinutes = def.DeepWorkMinutes
	}
	if cfg.BadgeHistoryCap <= 0 {
		cfg.BadgeHistoryCap = def.BadgeHistoryCap
	}
	return cfg
}

func (c Config) MinSessionMS() int64 {
	return int64(c.MinSessionSeconds) * timeline.MsPerSecond
}

func (c Config) DeleteThresholdMS() int64 {
	return int64(c.DeleteThresholdSeconds) * timeline.MsPerSecond
}

func (c Config) DragMinMS() int64 {
	return int64(c.DragMinSeconds) * timeline.MsPerSecond
}

// Rules converts the config into achievement thresholds.
func (c Config) Rules() achieve.Rules {
	rules := achieve.DefaultRules()
	if ms, ok := parseClock(c.EarlyBird); ok {
		rules.EarlyBirdMS = ms
	}
	rules.SolidHourMS = int64(c.SolidHourMinutes) * timeline.MsPerMinute
	rules.DeepWorkMS = int64(c.DeepWorkMinutes) * timeline.MsPerMinute
	rules.HistoryCap = c.BadgeHistoryCap
	return rules
}

// parseClock reads "HH:MM" into milliseconds past midnight.
func parseClock(s string) (int64, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return int64(h)*timeline.MsPerHour + int64(m)*timeline.MsPerMinute, true
}
