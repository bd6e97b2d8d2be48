package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/layout"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: write failed: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("non-existent file returns defaults", func(t *testing.T) {
		res, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(Default(), res.Config); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty path returns defaults", func(t *testing.T) {
		res, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if res.Config.Profile != ProfileCells {
			t.Errorf("Profile: got %q, want %q", res.Config.Profile, ProfileCells)
		}
	})

	t.Run("overrides keep other defaults", func(t *testing.T) {
		path := writeFile(t, `
log_level = "debug"

[dialog]
duration_ms = 350

[dimming]
max_alpha = 0.4
`)
		res, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		want := Default()
		want.LogLevel = "debug"
		want.Dialog.DurationMS = 350
		want.Dimming.MaxAlpha = 0.4
		if diff := cmp.Diff(want, res.Config); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
		if len(res.Warnings) != 0 {
			t.Errorf("Warnings: got %v, want none", res.Warnings)
		}
	})

	t.Run("profile selects base values", func(t *testing.T) {
		path := writeFile(t, `
profile = "points"

[layout]
gap = 8
`)
		res, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		got := res.Config.Metrics()
		want := layout.DefaultMetrics()
		want.Gap = 8
		if got != want {
			t.Errorf("Metrics: got %+v, want %+v", got, want)
		}
		if res.Config.SwipeThreshold != animation.DefaultSwipeThreshold {
			t.Errorf("SwipeThreshold: got %g, want %d", res.Config.SwipeThreshold, animation.DefaultSwipeThreshold)
		}
	})

	t.Run("unknown keys are warnings", func(t *testing.T) {
		path := writeFile(t, `
colour = "red"

[dialog]
wobble = 3
`)
		res, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := []string{`unknown config key: "colour"`, `unknown config key: "dialog.wobble"`}
		if diff := cmp.Diff(want, res.Warnings); diff != "" {
			t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid TOML returns error", func(t *testing.T) {
		path := writeFile(t, "profile = ")
		if _, err := Load(path); err == nil {
			t.Fatal("Load should fail for invalid TOML")
		}
	})

	t.Run("unknown profile returns error", func(t *testing.T) {
		path := writeFile(t, `profile = "pixels"`)
		if _, err := Load(path); err == nil {
			t.Fatal("Load should fail for an unknown profile")
		}
	})

	t.Run("invalid values return validation error", func(t *testing.T) {
		path := writeFile(t, `
[dimming]
max_alpha = 1.5
`)
		_, err := Load(path)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Load err = %v, want *ValidationError", err)
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", FileName)

		cfg := Default()
		cfg.Sheet.FullScreen = true
		cfg.LogLevel = "warn"
		if err := Save(path, cfg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		res, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if diff := cmp.Diff(cfg, res.Config); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("written file is TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := Save(path, Default()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{`profile = "cells"`, "[dialog]", "[sheet]", "[dimming]", "[layout]"} {
			if !strings.Contains(string(data), want) {
				t.Errorf("saved file missing %q:\n%s", want, data)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative duration", func(c *Config) { c.Sheet.DurationMS = -1 }, "sheet durations"},
		{"zero breakpoint", func(c *Config) { c.Dialog.Breakpoint = 0 }, "dialog.breakpoint"},
		{"alpha above one", func(c *Config) { c.Dimming.MaxAlpha = 1.2 }, "max_alpha"},
		{"zero alpha", func(c *Config) { c.Dimming.MaxAlpha = 0 }, "max_alpha"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"zero scale", func(c *Config) { c.Layout.Scale = 0 }, "layout.scale"},
		{"negative inset", func(c *Config) { c.Layout.Gap = -2 }, "insets"},
		{"zero swipe", func(c *Config) { c.SwipeThreshold = 0 }, "swipe_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestForProfile(t *testing.T) {
	for _, profile := range []string{ProfilePoints, ProfileCells} {
		t.Run(profile, func(t *testing.T) {
			cfg, err := ForProfile(profile)
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("stock %s profile invalid: %v", profile, err)
			}
		})
	}
	if _, err := ForProfile("nope"); err == nil {
		t.Error("unknown profile should fail")
	}
}

func TestConversions(t *testing.T) {
	points, _ := ForProfile(ProfilePoints)

	if got := points.Strategy(animation.Dialog).Config(); got != animation.DefaultConfig(animation.Dialog) {
		t.Errorf("dialog config: got %+v, want stock", got)
	}
	if got := points.Strategy(animation.Sheet).Kind(); got != animation.Sheet {
		t.Errorf("sheet kind: got %v", got)
	}

	dim := points.DimmingConfig()
	if dim.FadeInDuration != 200*time.Millisecond || dim.FadeOutDuration != 100*time.Millisecond {
		t.Errorf("dimming durations: got %v/%v", dim.FadeInDuration, dim.FadeOutDuration)
	}

	cells := Default()
	if cells.Metrics() != layout.CellMetrics() {
		t.Errorf("cells metrics: got %+v", cells.Metrics())
	}

	levels := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "bogus": slog.LevelInfo}
	for in, want := range levels {
		cells.LogLevel = in
		if got := cells.Level(); got != want {
			t.Errorf("Level(%q): got %v, want %v", in, got, want)
		}
	}
}
