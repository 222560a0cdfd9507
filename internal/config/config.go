package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/watch/internal/ansitext"
	"github.com/Iron-Ham/watch/internal/diff"
	"github.com/Iron-Ham/watch/internal/errors"
	"github.com/Iron-Ham/watch/internal/layout"
)

// Interval bounds. Values outside the range are clamped rather than rejected.
const (
	DefaultInterval = 2 * time.Second
	MinInterval     = 100 * time.Millisecond
	MaxInterval     = 2678400 * time.Second
)

// EnvPrefix is the prefix for environment variables bound by AutomaticEnv,
// so the interval key reads WATCH_INTERVAL.
const EnvPrefix = "WATCH"

// Config represents the complete watch configuration
type Config struct {
	// Interval is the delay between runs in seconds. A comma is accepted as the
	// decimal separator.
	Interval string `mapstructure:"interval"`
	// Precise anchors each deadline to the start of the previous run
	Precise bool `mapstructure:"precise"`
	// NoTitle hides the two header lines
	NoTitle bool `mapstructure:"no_title"`
	// NoWrap truncates long lines instead of wrapping them
	NoWrap bool `mapstructure:"no_wrap"`
	// Differences selects highlighting: "", "none", "changes" or "permanent"
	Differences string `mapstructure:"differences"`
	// Beep rings the terminal bell when the command exits non-zero
	Beep bool `mapstructure:"beep"`
	// ErrExit stops after a non-zero exit once a key is pressed
	ErrExit bool `mapstructure:"errexit"`
	// ChgExit stops when the visible output changes
	ChgExit bool `mapstructure:"chgexit"`
	// EquExit stops after this many consecutive unchanged runs (-1 = disabled)
	EquExit int `mapstructure:"equexit"`
	// Follow appends output instead of redrawing the screen
	Follow bool `mapstructure:"follow"`
	// NoRerun suppresses re-execution on terminal resize
	NoRerun bool `mapstructure:"no_rerun"`
	// Exec runs the command directly instead of through the shell
	Exec bool `mapstructure:"exec"`
	// Color is one of "auto", "always" or "never"
	Color string `mapstructure:"color"`
	// ShotsDir is where screenshots are written (empty disables them)
	ShotsDir string `mapstructure:"shotsdir"`
	// Shell is the shell used in shell mode (read from SHELL)
	Shell string `mapstructure:"shell"`

	Terminal TerminalConfig `mapstructure:"terminal"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TerminalConfig overrides the detected terminal size. Zero means detect.
type TerminalConfig struct {
	// Columns is read from COLUMNS
	Columns int `mapstructure:"columns"`
	// Rows is read from LINES
	Rows int `mapstructure:"rows"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether a log file is written
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is the directory holding watch.log (default: ConfigDir())
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the size at which the log file is rotated
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files kept
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Interval:    "2",
		Differences: "",
		EquExit:     -1,
		Color:       string(ansitext.ColorAuto),
		Shell:       "/bin/sh",
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values and environment bindings with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("interval", defaults.Interval)
	v.SetDefault("precise", defaults.Precise)
	v.SetDefault("no_title", defaults.NoTitle)
	v.SetDefault("no_wrap", defaults.NoWrap)
	v.SetDefault("differences", defaults.Differences)
	v.SetDefault("beep", defaults.Beep)
	v.SetDefault("errexit", defaults.ErrExit)
	v.SetDefault("chgexit", defaults.ChgExit)
	v.SetDefault("equexit", defaults.EquExit)
	v.SetDefault("follow", defaults.Follow)
	v.SetDefault("no_rerun", defaults.NoRerun)
	v.SetDefault("exec", defaults.Exec)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("shotsdir", defaults.ShotsDir)
	v.SetDefault("shell", defaults.Shell)

	// Terminal defaults
	v.SetDefault("terminal.columns", defaults.Terminal.Columns)
	v.SetDefault("terminal.rows", defaults.Terminal.Rows)

	// Logging defaults
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Environment: WATCH_* for every key, plus the conventional names
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("shell", "SHELL")
	_ = v.BindEnv("terminal.columns", "COLUMNS")
	_ = v.BindEnv("terminal.rows", "LINES")
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	// COLUMNS and LINES come from the environment verbatim; ignore values
	// that are not sizes instead of failing the whole load.
	sanitizeDimension(v, "terminal.columns")
	sanitizeDimension(v, "terminal.rows")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.Join(errors.ErrInvalidConfig, err), "decode configuration")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

func sanitizeDimension(v *viper.Viper, key string) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil || n < 0 || n > math.MaxUint16 {
		v.Set(key, 0)
	}
}

// IntervalDuration returns the parsed and clamped interval. Validate reports
// the same parse failures, so a loaded Config never returns an error here.
func (c *Config) IntervalDuration() (time.Duration, error) {
	return ParseInterval(c.Interval)
}

// DiffMode returns the highlighting mode.
func (c *Config) DiffMode() diff.Mode {
	mode, _ := diff.ParseMode(c.Differences)
	return mode
}

// ColorMode returns the escape sequence policy.
func (c *Config) ColorMode() ansitext.ColorMode {
	return ansitext.ColorMode(c.Color)
}

// LayoutPolicy returns how over-long lines are handled.
func (c *Config) LayoutPolicy() layout.Policy {
	if c.NoWrap {
		return layout.Truncate
	}
	return layout.Wrap
}

// EquExitEnabled reports whether a stable-count threshold is configured.
func (c *Config) EquExitEnabled() bool {
	return c.EquExit >= 0
}

// ParseInterval parses a number of seconds. Surrounding whitespace is
// ignored, a comma is read as a decimal point, and the result is clamped to
// [MinInterval, MaxInterval].
func ParseInterval(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.New("interval is empty")
	}

	secs, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, errors.New("interval is not a number")
	}

	d := time.Duration(secs * float64(time.Second))
	switch {
	case secs < MinInterval.Seconds():
		d = MinInterval
	case secs > MaxInterval.Seconds():
		d = MaxInterval
	}
	return d, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "watch")
	}
	// Fall back to ~/.config/watch
	home, err := os.UserHomeDir()
	if err != nil {
		return ".watch"
	}
	return filepath.Join(home, ".config", "watch")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
