package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-doodle/internal/config"
)

func withFlags(t *testing.T, configPath, spawn string) {
	t.Helper()
	oldConfig, oldSpawn := flagConfig, flagSpawn
	flagConfig, flagSpawn = configPath, spawn
	t.Cleanup(func() {
		flagConfig, flagSpawn = oldConfig, oldSpawn
	})
}

func TestLoadConfigPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doodle.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  reference_line: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	withFlags(t, path, "dense")

	cfg, source, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Grid.ReferenceLine != 5 {
		t.Errorf("reference_line = %d, want 5 from the file", cfg.Grid.ReferenceLine)
	}
	if cfg.Spawn.FirstProbability != 1 {
		t.Errorf("first_probability = %v, want the dense preset", cfg.Spawn.FirstProbability)
	}
	if !strings.HasSuffix(source, "+ dense") {
		t.Errorf("source = %q, want preset suffix", source)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	withFlags(t, "", "crowded")

	if _, _, err := loadConfig(); err == nil {
		t.Error("loadConfig() accepted an unknown preset")
	}
}

func TestTickRate(t *testing.T) {
	cfg := config.DefaultDoodleConfig()
	if got := tickRate(cfg); got != 100 {
		t.Errorf("tickRate() = %d, want 100", got)
	}
	cfg.Physics.TickMS = 5000
	if got := tickRate(cfg); got != 1 {
		t.Errorf("tickRate() = %d for a slow tick, want 1", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/.doodle/x.db"); got != filepath.Join(home, ".doodle/x.db") {
		t.Errorf("expandHome() = %q", got)
	}
	if got := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("expandHome() changed an absolute path: %q", got)
	}
}

func TestSizeWarning(t *testing.T) {
	short := config.DefaultDoodleConfig()
	short.Render.LinesPerCell = 1

	tests := []struct {
		name          string
		cfg           config.DoodleConfig
		width, height int
		want          string
	}{
		{"default fits", config.DefaultDoodleConfig(), 80, 32, ""},
		{"default on 80x24", config.DefaultDoodleConfig(), 80, 24, "lines_per_cell: 1"},
		{"narrow terminal", config.DefaultDoodleConfig(), 60, 40, "needs 80x32"},
		{"short layout on 80x24", short, 80, 24, ""},
		{"short layout too low", short, 80, 16, "needs 80x17"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sizeWarning(tc.cfg, tc.width, tc.height)
			if tc.want == "" {
				if got != "" {
					t.Errorf("sizeWarning() = %q, want no warning", got)
				}
				return
			}
			if !strings.Contains(got, tc.want) {
				t.Errorf("sizeWarning() = %q, want it to mention %q", got, tc.want)
			}
		})
	}
	if got := sizeWarning(short, 80, 16); strings.Contains(got, "lines_per_cell") {
		t.Errorf("short layout should not suggest lines_per_cell again: %q", got)
	}
}
