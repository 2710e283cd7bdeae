package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakobkreft/caketimer/internal/timeline"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if cfg != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverridesThresholds(t *testing.T) {
	path := writeConfig(t, `
goal_minutes: 300
min_session_seconds: 30
early_bird: "06:00"
deep_work_minutes: 120
`)

	cfg := LoadConfig(path)
	if cfg.GoalMinutes != 300 || cfg.MinSessionSeconds != 30 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.MinSessionMS() != 30*timeline.MsPerSecond {
		t.Fatalf("MinSessionMS = %d", cfg.MinSessionMS())
	}

	rules := cfg.Rules()
	if rules.EarlyBirdMS != 6*timeline.MsPerHour {
		t.Fatalf("early bird = %d, want 06:00", rules.EarlyBirdMS)
	}
	if rules.DeepWorkMS != 120*timeline.MsPerMinute {
		t.Fatalf("deep work = %d", rules.DeepWorkMS)
	}
	// Untouched fields keep their defaults.
	if rules.SolidHourMS != 60*timeline.MsPerMinute || rules.HistoryCap != 60 {
		t.Fatalf("rules = %+v", rules)
	}
}

func TestLoadConfigBadYamlFallsBack(t *testing.T) {
	path := writeConfig(t, "goal_minutes: [not: a: number\n")

	if cfg := LoadConfig(path); cfg != DefaultConfig() {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigResetsOutOfRangeFields(t *testing.T) {
	path := writeConfig(t, `
goal_minutes: 100000
min_session_seconds: -4
early_bird: "25:99"
solid_hour_minutes: 45
`)

	cfg := LoadConfig(path)
	def := DefaultConfig()
	if cfg.GoalMinutes != def.GoalMinutes {
		t.Fatalf("goal = %d, want default", cfg.GoalMinutes)
	}
	if cfg.MinSessionSeconds != def.MinSessionSeconds {
		t.Fatalf("min session = %d, want default", cfg.MinSessionSeconds)
	}
	if cfg.EarlyBird != def.EarlyBird {
		t.Fatalf("early bird = %q, want default", cfg.EarlyBird)
	}
	// The one in-range override sticks.
	if cfg.SolidHourMinutes != 45 {
		t.Fatalf("solid hour = %d, want 45", cfg.SolidHourMinutes)
	}
}

func TestParseClock(t *testing.T) {
	if ms, ok := parseClock("07:30"); !ok || ms != 7*timeline.MsPerHour+30*timeline.MsPerMinute {
		t.Fatalf("parseClock(07:30) = %d, %v", ms, ok)
	}
	for _, bad := range []string{"", "7", "7:3:1", "24:00", "12:60", "aa:bb"} {
		if _, ok := parseClock(bad); ok {
			t.Fatalf("parseClock(%q) accepted", bad)
		}
	}
}
