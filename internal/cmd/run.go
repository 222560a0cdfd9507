package cmd

import (
	"context"
	"io"

	"github.com/Iron-Ham/watch/internal/config"
	"github.com/Iron-Ham/watch/internal/execrunner"
	"github.com/Iron-Ham/watch/internal/keymap"
	"github.com/Iron-Ham/watch/internal/logging"
	"github.com/Iron-Ham/watch/internal/scheduler"
	"github.com/Iron-Ham/watch/internal/screenshot"
	"github.com/Iron-Ham/watch/internal/terminal"
)

// schedulerConfig converts the loaded configuration into scheduler settings.
func schedulerConfig(cfg *config.Config, command []string) (scheduler.Config, error) {
	interval, err := cfg.IntervalDuration()
	if err != nil {
		return scheduler.Config{}, err
	}
	equExit := -1
	if cfg.EquExitEnabled() {
		equExit = cfg.EquExit
	}
	return scheduler.Config{
		Command:  command,
		Interval: interval,
		Precise:  cfg.Precise,
		NoTitle:  cfg.NoTitle,
		Follow:   cfg.Follow,
		NoRerun:  cfg.NoRerun,
		Beep:     cfg.Beep,
		ErrExit:  cfg.ErrExit,
		ChgExit:  cfg.ChgExit,
		Diff:     cfg.DiffMode(),
		Color:    cfg.ColorMode(),
		Layout:   cfg.LayoutPolicy(),
		ShotsDir: cfg.ShotsDir,
		EquExit:  equExit,
	}, nil
}

// newLogger opens the debug log when logging is enabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	dir := cfg.Logging.Dir
	if dir == "" {
		dir = config.ConfigDir()
	}
	return logging.NewLogger(dir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// watch opens the terminal and runs the scheduler until an exit condition.
func watch(ctx context.Context, cfg *config.Config, command []string, stdin io.Reader, stdout io.Writer) (int, error) {
	schedCfg, err := schedulerConfig(cfg, command)
	if err != nil {
		return 0, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return 0, err
	}
	defer func() { _ = logger.Close() }()

	term, err := terminal.Open(stdin, stdout, terminal.Options{
		Columns: cfg.Terminal.Columns,
		Rows:    cfg.Terminal.Rows,
	})
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := term.Close(); cerr != nil {
			logger.Warn("failed to restore terminal", "error", cerr)
		}
	}()

	sessionLog := logger.With(
		"interval", schedCfg.Interval.String(),
		"exec", cfg.Exec,
		"differences", schedCfg.Diff.String(),
	)
	sessionLog.Info("watch started")

	s := scheduler.New(schedCfg, scheduler.Deps{
		Runner:    &execrunner.Runner{Shell: cfg.Shell, Exec: cfg.Exec},
		Terminal:  term,
		Snapshots: screenshot.NewWriter(),
		Keymap:    keymap.Default(),
		Logger:    sessionLog,
	})
	code, err := s.Run(ctx)
	sessionLog.Info("watch finished", "code", code)
	return code, err
}
