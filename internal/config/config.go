// Package config loads runtime settings from .ls-cosmos.yaml, COSMOS_*
// environment variables and CLI flags via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-cosmos/internal/nav"
)

// EnvPrefix namespaces environment overrides, e.g. COSMOS_LOG_LEVEL.
const EnvPrefix = "COSMOS"

// BirthDateLayout is the accepted format for birth_date.
const BirthDateLayout = "2006-01-02"

// LayoutConfig holds the scroll arithmetic constants.
type LayoutConfig struct {
	HeroHeight         float64 `mapstructure:"hero_height"`
	PinnedRegionHeight float64 `mapstructure:"pinned_region_height"`
}

// TimingConfig holds the controller and animation timings.
type TimingConfig struct {
	NextCooldown time.Duration `mapstructure:"next_cooldown"`
	SettleDelay  time.Duration `mapstructure:"settle_delay"`
	AnimTick     time.Duration `mapstructure:"anim_tick"`
	ScrollTime   time.Duration `mapstructure:"scroll_time"`
}

// SimConfig holds simulation speeds for the overview and a focused body.
type SimConfig struct {
	Speed      float64 `mapstructure:"speed"`
	FocusSpeed float64 `mapstructure:"focus_speed"`
}

// Config holds all runtime configuration for a session.
type Config struct {
	LogLevel     string       `mapstructure:"log_level"`
	LogFile      string       `mapstructure:"log_file"`
	ContentFile  string       `mapstructure:"content_file"`
	LocationFile string       `mapstructure:"location_file"`
	BirthDate    string       `mapstructure:"birth_date"`
	Layout       LayoutConfig `mapstructure:"layout"`
	Timing       TimingConfig `mapstructure:"timing"`
	Sim          SimConfig    `mapstructure:"sim"`
}

// Validation errors.
var (
	ErrLayout    = errors.New("config: layout heights must be positive")
	ErrTiming    = errors.New("config: timings must not be negative")
	ErrAnimTick  = errors.New("config: anim_tick must be positive")
	ErrBirthDate = errors.New("config: birth_date must be YYYY-MM-DD")
)

// StateDir is where the location and log files live by default:
// $XDG_STATE_HOME/ls-cosmos, falling back to ~/.local/state/ls-cosmos.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "ls-cosmos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ls-cosmos")
	}
	return filepath.Join(home, ".local", "state", "ls-cosmos")
}

// SetDefaults registers every key with its built-in default so env
// overrides resolve for nested keys too.
func SetDefaults() {
	layout := nav.DefaultLayout()
	state := StateDir()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_file", filepath.Join(state, "ls-cosmos.log"))
	viper.SetDefault("content_file", "")
	viper.SetDefault("location_file", filepath.Join(state, "location"))
	viper.SetDefault("birth_date", "")
	viper.SetDefault("layout.hero_height", layout.HeroHeight)
	viper.SetDefault("layout.pinned_region_height", layout.PinnedRegionHeight)
	viper.SetDefault("timing.next_cooldown", nav.DefaultNextCooldown)
	viper.SetDefault("timing.settle_delay", nav.DefaultSettleDelay)
	viper.SetDefault("timing.anim_tick", 50*time.Millisecond)
	viper.SetDefault("timing.scroll_time", 600*time.Millisecond)
	viper.SetDefault("sim.speed", 0.5)
	viper.SetDefault("sim.focus_speed", 0.1)
}

// BindEnv enables COSMOS_* overrides; nested keys use underscores
// (COSMOS_TIMING_SETTLE_DELAY).
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and formats.
func (c Config) Validate() error {
	if c.Layout.HeroHeight < 0 || c.Layout.PinnedRegionHeight <= 0 {
		return ErrLayout
	}
	if c.Timing.NextCooldown < 0 || c.Timing.SettleDelay < 0 || c.Timing.ScrollTime < 0 {
		return ErrTiming
	}
	if c.Timing.AnimTick <= 0 {
		return ErrAnimTick
	}
	if _, err := c.Birth(); err != nil {
		return err
	}
	return nil
}

// Birth parses birth_date. An empty value is the zero time.
func (c Config) Birth() (time.Time, error) {
	if c.BirthDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(BirthDateLayout, c.BirthDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBirthDate, c.BirthDate)
	}
	return t, nil
}

// NavLayout returns the scroll layout for cardsPerBody cards.
func (c Config) NavLayout(cardsPerBody int) nav.Layout {
	return nav.Layout{
		HeroHeight:         c.Layout.HeroHeight,
		PinnedRegionHeight: c.Layout.PinnedRegionHeight,
		CardsPerBody:       cardsPerBody,
	}
}

// NavOptions returns controller options with the configured timings and
// the default camera offsets.
func (c Config) NavOptions() nav.Options {
	opts := nav.DefaultOptions()
	opts.NextCooldown = c.Timing.NextCooldown
	opts.SettleDelay = c.Timing.SettleDelay
	return opts
}
