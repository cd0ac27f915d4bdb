package config_test

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"wordcomplete/internal/config"
)

func TestLoadFromJSON(t *testing.T) {
	cfg, err := config.LoadFromJSON(strings.NewReader(`{"author": "me", "queue_size": 8}`))
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}
	if cfg.Author != "me" || cfg.QueueSize != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}

	if _, err := config.LoadFromJSON(strings.NewReader(`{"author": 3}`)); err == nil {
		t.Error("LoadFromJSON() with wrong type should fail")
	}
}

func TestMergeOverDefaults(t *testing.T) {
	cfg, err := config.Default().Merge(map[string]any{"debug": true, "log_file": "/tmp/x.log"})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if !cfg.Debug || cfg.LogFile != "/tmp/x.log" || cfg.Author != "wordcomplete" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		value     string
		start     string
		want      string
		verbosity int
	}{
		{"", "notice", "notice", 0},
		{"", "info", "info", 1},
		{"trace", "info", "debug", 2},
		{"DEBUG", "info", "debug", 2},
		{"warn", "debug", "info", 1},
		{"info", "debug", "info", 1},
	}

	for _, tt := range tests {
		t.Run(tt.value+"/"+tt.start, func(t *testing.T) {
			cfg := config.Default()
			cfg.LogLevel = tt.start
			cfg.ApplyEnv(func(key string) string {
				if key == config.LogEnv {
					return tt.value
				}
				return ""
			})
			if cfg.LogLevel != tt.want {
				t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, tt.want)
			}
			if got := cfg.Verbosity(); got != tt.verbosity {
				t.Errorf("Verbosity() = %d, want %d", got, tt.verbosity)
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	want := filepath.Join(dataHome, "xi-core", "wordcomplete.log")
	if got, err := config.DefaultLogPath(); err != nil || got != want {
		t.Errorf("DefaultLogPath() = %q, %v, want %q", got, err, want)
	}

	got, err := config.Default().LogPath()
	if err != nil {
		t.Fatalf("LogPath() error = %v", err)
	}
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}

	custom := config.Default()
	custom.LogFile = filepath.Join(dataHome, "nested", "dir", "plugin.log")
	if got, err := custom.LogPath(); err != nil || got != custom.LogFile {
		t.Errorf("LogPath() = %q, %v, want %q", got, err, custom.LogFile)
	}
}

func TestMerge(t *testing.T) {
	base := config.Default()
	base.Author = "first"
	base.QueueSize = 4

	cfg, err := base.Merge(map[string]any{"author": "second"})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if cfg.Author != "second" || cfg.QueueSize != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if base.Author != "first" {
		t.Error("Merge() modified its receiver")
	}

	if cfg, err := base.Merge(nil); err != nil || cfg != base {
		t.Errorf("Merge(nil) = %+v, %v", cfg, err)
	}
}
