package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/dimming"
	"github.com/marcus/overlay/pkg/overlay/layout"
)

// FileName is the config file looked up in the user config directory.
const FileName = "overlay.toml"

// Profiles
const (
	ProfilePoints = "points"
	ProfileCells  = "cells"
)

// Config is the on-disk configuration.
type Config struct {
	Profile        string         `toml:"profile"`
	LogLevel       string         `toml:"log_level"`
	SwipeThreshold float64        `toml:"swipe_threshold"`
	Dialog         StrategyConfig `toml:"dialog"`
	Sheet          StrategyConfig `toml:"sheet"`
	Dimming        DimmingConfig  `toml:"dimming"`
	Layout         LayoutConfig   `toml:"layout"`
}

// StrategyConfig mirrors animation.Config with durations in milliseconds.
type StrategyConfig struct {
	DurationMS           int     `toml:"duration_ms"`
	FullScreenDurationMS int     `toml:"full_screen_duration_ms,omitempty"`
	FullScreen           bool    `toml:"full_screen,omitempty"`
	CornerRadius         float64 `toml:"corner_radius"`
	NarrowMargin         float64 `toml:"narrow_margin,omitempty"`
	WideMargin           float64 `toml:"wide_margin,omitempty"`
	Breakpoint           float64 `toml:"breakpoint,omitempty"`
	SafeAreaTop          float64 `toml:"safe_area_top,omitempty"`
}

type DimmingConfig struct {
	MaxAlpha  float64 `toml:"max_alpha"`
	FadeInMS  int     `toml:"fade_in_ms"`
	FadeOutMS int     `toml:"fade_out_ms"`
}

type LayoutConfig struct {
	TopInset        float64 `toml:"top_inset"`
	Gap             float64 `toml:"gap"`
	BottomInset     float64 `toml:"bottom_inset"`
	HorizontalInset float64 `toml:"horizontal_inset"`
	RegularHeight   float64 `toml:"regular_height"`
	CompactHeight   float64 `toml:"compact_height"`
	Scale           float64 `toml:"scale"`
}

// LoadResult carries the config and any keys the file set that nothing
// reads.
type LoadResult struct {
	Config   Config
	Warnings []string
}

// Default returns the cells profile, the one a terminal uses.
func Default() Config {
	cfg, _ := ForProfile(ProfileCells)
	return cfg
}

// ForProfile returns the stock values for a profile.
func ForProfile(profile string) (Config, error) {
	var (
		dialog, sheet animation.Config
		metrics       layout.Metrics
		swipe         float64
	)
	switch profile {
	case ProfileCells:
		dialog, sheet = animation.CellConfig(animation.Dialog), animation.CellConfig(animation.Sheet)
		metrics = layout.CellMetrics()
		swipe = 3
	case ProfilePoints:
		dialog, sheet = animation.DefaultConfig(animation.Dialog), animation.DefaultConfig(animation.Sheet)
		metrics = layout.DefaultMetrics()
		swipe = animation.DefaultSwipeThreshold
	default:
		return Config{}, fmt.Errorf("unknown profile %q (want %s or %s)", profile, ProfilePoints, ProfileCells)
	}

	dim := dimming.DefaultConfig()
	return Config{
		Profile:        profile,
		LogLevel:       "info",
		SwipeThreshold: swipe,
		Dialog:         fromAnimation(dialog),
		Sheet:          fromAnimation(sheet),
		Dimming: DimmingConfig{
			MaxAlpha:  dim.MaxAlpha,
			FadeInMS:  int(dim.FadeInDuration / time.Millisecond),
			FadeOutMS: int(dim.FadeOutDuration / time.Millisecond),
		},
		Layout: LayoutConfig(metrics),
	}, nil
}

// DefaultPath is overlay.toml under the user config directory, or empty
// when the home directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "overlay", FileName)
}

// Load reads path over the defaults of the profile the file names. A
// missing file yields the defaults.
func Load(path string) (*LoadResult, error) {
	result := &LoadResult{Config: Default()}
	if path == "" {
		return result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var head struct {
		Profile string `toml:"profile"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if head.Profile != "" {
		if result.Config, err = ForProfile(head.Profile); err != nil {
			return nil, err
		}
	}

	md, err := toml.Decode(string(data), &result.Config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	for _, key := range md.Undecoded() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key.String()))
	}

	if err := result.Config.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encoding config: %w", err)
	}
	return f.Close()
}

// ValidationError lists every invalid field.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate rejects values the core would misbehave on.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Profile != ProfilePoints && c.Profile != ProfileCells {
		add("profile %q is not %s or %s", c.Profile, ProfilePoints, ProfileCells)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		add("log_level %q is not debug, info, warn or error", c.LogLevel)
	}
	if c.SwipeThreshold <= 0 {
		add("swipe_threshold must be positive")
	}

	for name, s := range map[string]StrategyConfig{"dialog": c.Dialog, "sheet": c.Sheet} {
		if s.DurationMS < 0 || s.FullScreenDurationMS < 0 {
			add("%s durations must not be negative", name)
		}
		if s.CornerRadius < 0 || s.NarrowMargin < 0 || s.WideMargin < 0 || s.SafeAreaTop < 0 {
			add("%s lengths must not be negative", name)
		}
	}
	if c.Dialog.Breakpoint <= 0 {
		add("dialog.breakpoint must be positive")
	}

	if c.Dimming.MaxAlpha <= 0 || c.Dimming.MaxAlpha > 1 {
		add("dimming.max_alpha %g is outside (0, 1]", c.Dimming.MaxAlpha)
	}
	if c.Dimming.FadeInMS < 0 || c.Dimming.FadeOutMS < 0 {
		add("dimming durations must not be negative")
	}

	l := c.Layout
	if l.TopInset < 0 || l.Gap < 0 || l.BottomInset < 0 || l.HorizontalInset < 0 {
		add("layout insets must not be negative")
	}
	if l.RegularHeight <= 0 || l.CompactHeight <= 0 {
		add("layout heights must be positive")
	}
	if l.Scale <= 0 {
		add("layout.scale must be positive")
	}

	if len(problems) > 0 {
		// Map iteration order is random.
		slices.Sort(problems)
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Strategy builds the motion strategy for kind.
func (c Config) Strategy(kind animation.Kind) animation.Strategy {
	s := c.Dialog
	if kind == animation.Sheet {
		s = c.Sheet
	}
	return animation.New(kind, s.Animation())
}

// Animation converts to the core type.
func (s StrategyConfig) Animation() animation.Config {
	return animation.Config{
		Duration:           time.Duration(s.DurationMS) * time.Millisecond,
		FullScreenDuration: time.Duration(s.FullScreenDurationMS) * time.Millisecond,
		FullScreen:         s.FullScreen,
		CornerRadius:       s.CornerRadius,
		NarrowMargin:       s.NarrowMargin,
		WideMargin:         s.WideMargin,
		Breakpoint:         s.Breakpoint,
		SafeAreaTop:        s.SafeAreaTop,
	}
}

func fromAnimation(a animation.Config) StrategyConfig {
	return StrategyConfig{
		DurationMS:           int(a.Duration / time.Millisecond),
		FullScreenDurationMS: int(a.FullScreenDuration / time.Millisecond),
		FullScreen:           a.FullScreen,
		CornerRadius:         a.CornerRadius,
		NarrowMargin:         a.NarrowMargin,
		WideMargin:           a.WideMargin,
		Breakpoint:           a.Breakpoint,
		SafeAreaTop:          a.SafeAreaTop,
	}
}

// Metrics returns the action layout metrics.
func (c Config) Metrics() layout.Metrics {
	return layout.Metrics(c.Layout)
}

// DimmingConfig returns the backdrop configuration.
func (c Config) DimmingConfig() dimming.Config {
	return dimming.Config{
		MaxAlpha:        c.Dimming.MaxAlpha,
		FadeInDuration:  time.Duration(c.Dimming.FadeInMS) * time.Millisecond,
		FadeOutDuration: time.Duration(c.Dimming.FadeOutMS) * time.Millisecond,
	}
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
