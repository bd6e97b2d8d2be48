package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/marcus/overlay/internal/config"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/animation"
)

// execute runs the root command with a private config path and returns
// its stdout.
func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()

	configInitForce = false
	configInitProfile = config.ProfileCells
	layoutWidth, layoutProfile = 0, ""
	timelineStrategy = kindFlag{}
	timelineWidth, timelineHeight, timelineSteps = 0, 0, 4
	timelineActions = []string{"positive", "neutral"}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestKindFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    animation.Kind
		wantErr bool
	}{
		{"dialog", animation.Dialog, false},
		{"Alert", animation.Dialog, false},
		{"sheet", animation.Sheet, false},
		{"action-sheet", animation.Sheet, false},
		{"popover", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f kindFlag
			err := f.Set(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if f.String() != "" {
					t.Errorf("failed Set left value %q", f.String())
				}
				return
			}
			if f.or(-1) != tt.want {
				t.Errorf("Set(%q) = %v, want %v", tt.input, f.or(-1), tt.want)
			}
		})
	}

	var unset kindFlag
	if unset.or(animation.Sheet) != animation.Sheet {
		t.Error("unset flag should fall back to the default")
	}
	if unset.Type() != "strategy" {
		t.Errorf("Type() = %q", unset.Type())
	}
}

func TestParseActions(t *testing.T) {
	actions, err := parseActions([]string{"neutral", "positive-reversed"})
	if err != nil {
		t.Fatal(err)
	}
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}
	if actions[0].Title() != "neutral 1" || actions[0].Category() != action.Neutral {
		t.Errorf("first action = %v", actions[0])
	}
	if actions[1].Category() != action.PositiveReversed {
		t.Errorf("second action = %v", actions[1])
	}

	if _, err := parseActions([]string{"destructive"}); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestLayoutCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)

	out, err := execute(t, cfgPath, "layout", "--width", "40", "neutral", "positive")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	want := strings.Join([]string{
		"actions  width=40 height=5",
		`├── #0 positive "positive 2"  (2,1 36x1)`,
		`└── #1 neutral "neutral 1"  (2,2 36x1)`,
	}, "\n")
	if strings.TrimSpace(out) != want {
		t.Errorf("layout output =\n%s\nwant\n%s", out, want)
	}

	if _, err := execute(t, cfgPath, "layout", "--profile", "pixels", "positive"); err == nil {
		t.Error("unknown profile should fail")
	}
}

func TestStrategyFlagParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    animation.Kind
		wantSet bool
		wantErr bool
	}{
		{"long", []string{"--strategy", "sheet"}, animation.Sheet, true, false},
		{"shorthand", []string{"-s", "alert"}, animation.Dialog, true, false},
		{"joined shorthand", []string{"-ssheet"}, animation.Sheet, true, false},
		{"unset", nil, animation.Dialog, false, false},
		{"unknown", []string{"-s", "popover"}, animation.Dialog, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f kindFlag
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			fs.SetOutput(io.Discard)
			addStrategyFlag(fs, &f, "")

			err := fs.Parse(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if f.set != tt.wantSet || f.or(animation.Dialog) != tt.want {
				t.Errorf("Parse(%q) = %v set=%v, want %v set=%v", tt.args, f.or(animation.Dialog), f.set, tt.want, tt.wantSet)
			}
			if got := fs.Lookup("strategy").Value.Type(); got != "strategy" {
				t.Errorf("flag type = %q", got)
			}
		})
	}
}

func TestTimelineCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)

	out, err := execute(t, cfgPath, "timeline", "-s", "sheet", "--width", "80", "--height", "24", "--steps", "2")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	for _, want := range []string{"sheet in 80x24", "entrance  duration=", "exit  duration=", "p=0.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", config.FileName)

	out, err := execute(t, cfgPath, "config", "init", "--profile", "points")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "WROTE") {
		t.Errorf("output = %q", out)
	}
	res, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Config.Profile != config.ProfilePoints {
		t.Errorf("Profile = %q, want points", res.Config.Profile)
	}

	if _, err := execute(t, cfgPath, "config", "init"); err == nil {
		t.Error("init should refuse to overwrite")
	}
	if _, err := execute(t, cfgPath, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `profile = "cells"`) {
		t.Errorf("forced init should write the cells profile:\n%s", data)
	}
}

func TestConfigShow(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(cfgPath, []byte("log_level = \"debug\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{`log_level = "debug"`, "[sheet]", "[layout]"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}
