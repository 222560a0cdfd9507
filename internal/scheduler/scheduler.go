// Package scheduler drives the watch loop: wait, run the command, render the
// frame, and decide whether to stop.
package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/Iron-Ham/watch/internal/ansitext"
	"github.com/Iron-Ham/watch/internal/diff"
	"github.com/Iron-Ham/watch/internal/execrunner"
	"github.com/Iron-Ham/watch/internal/frame"
	"github.com/Iron-Ham/watch/internal/keymap"
	"github.com/Iron-Ham/watch/internal/layout"
	"github.com/Iron-Ham/watch/internal/logging"
	"github.com/Iron-Ham/watch/internal/terminal"
)

// PollSlice is the longest single wait for terminal input, so cancellation
// and the deadline are re-checked at least this often.
const PollSlice = 250 * time.Millisecond

// Runner executes the watched command.
type Runner interface {
	Run(ctx context.Context, argv []string) (execrunner.Output, error)
}

// Terminal is the display and input device.
type Terminal interface {
	Size() terminal.Size
	Poll(ctx context.Context, timeout time.Duration) (terminal.Event, bool, error)
	WaitKey(ctx context.Context) error
	Draw(lines []string, follow bool) error
	Beep() error
}

// SnapshotWriter persists a frame.
type SnapshotWriter interface {
	Save(dir string, lines []string) (string, error)
}

// Config holds the resolved settings for one watch session.
type Config struct {
	Command  []string
	Interval time.Duration
	Precise  bool
	NoTitle  bool
	Follow   bool
	NoRerun  bool
	Beep     bool
	ErrExit  bool
	ChgExit  bool
	Diff     diff.Mode
	Color    ansitext.ColorMode
	Layout   layout.Policy
	ShotsDir string

	// EquExit is the stable-count threshold; negative disables it.
	EquExit int
}

// Deps are the collaborators of a Scheduler. Keymap, Logger and Now are
// optional.
type Deps struct {
	Runner    Runner
	Terminal  Terminal
	Snapshots SnapshotWriter
	Keymap    *keymap.Keymap
	Logger    *logging.Logger
	Now       func() time.Time
}

// Scheduler owns the per-session state. It is not safe for concurrent use;
// Run is expected to be called once.
type Scheduler struct {
	cfg    Config
	runner Runner
	term   Terminal
	snaps  SnapshotWriter
	keys   *keymap.Keymap
	logger *logging.Logger
	now    func() time.Time

	diff          *diff.State
	exit          ExitState
	pendingShot   bool
	headerCommand string
}

// New creates a Scheduler.
func New(cfg Config, deps Deps) *Scheduler {
	s := &Scheduler{
		cfg:    cfg,
		runner: deps.Runner,
		term:   deps.Terminal,
		snaps:  deps.Snapshots,
		keys:   deps.Keymap,
		logger: deps.Logger,
		now:    deps.Now,
		diff:   diff.NewState(),
		exit:   ExitState{ChgExit: cfg.ChgExit, EquExit: cfg.EquExit},
	}
	if s.keys == nil {
		s.keys = keymap.Default()
	}
	if s.logger == nil {
		s.logger = logging.NopLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.headerCommand = frame.HeaderLeft(cfg.Command, cfg.Interval)
	s.logger = s.logger.WithCommand(strings.Join(cfg.Command, " "))
	return s
}

// WaitDuration returns how long to wait before the next run. In precise mode
// the deadline is anchored to the start of the previous run and never
// negative; otherwise it is the full interval from now.
func WaitDuration(precise bool, interval time.Duration, lastStart, now time.Time) time.Duration {
	if !precise {
		return interval
	}
	return max(lastStart.Add(interval).Sub(now), 0)
}

type waitOutcome int

const (
	waitTimeout waitOutcome = iota
	waitTrigger
	waitQuit
)

// Run executes the loop until a quit key, an exit condition, or ctx
// cancellation. The returned code is the process exit code; it is only
// meaningful when err is nil.
func (s *Scheduler) Run(ctx context.Context) (int, error) {
	var lastStart time.Time

	for iteration := 1; ; iteration++ {
		if iteration > 1 {
			wait := WaitDuration(s.cfg.Precise, s.cfg.Interval, lastStart, s.now())
			outcome, err := s.wait(ctx, wait)
			if err != nil {
				return 0, err
			}
			if outcome == waitQuit {
				s.logger.Info("quit requested", "iteration", iteration)
				return 0, nil
			}
		}
		if ctx.Err() != nil {
			return 0, nil
		}

		lastStart = s.now()
		code, done, err := s.runOnce(ctx, iteration)
		if err != nil {
			s.logger.Error("run failed", "iteration", iteration, "error", err.Error())
			return 0, err
		}
		if done {
			return code, nil
		}
	}
}

// wait polls the terminal in slices until the deadline, a quit, or a rerun
// request.
func (s *Scheduler) wait(ctx context.Context, d time.Duration) (waitOutcome, error) {
	deadline := s.now().Add(d)
	for {
		remaining := deadline.Sub(s.now())
		if remaining <= 0 {
			return waitTimeout, nil
		}

		ev, ok, err := s.term.Poll(ctx, min(remaining, PollSlice))
		if err != nil {
			if ctx.Err() != nil {
				return waitQuit, nil
			}
			return waitTimeout, err
		}
		if !ok {
			continue
		}

		switch ev.Type {
		case terminal.EventResize:
			if !s.cfg.NoRerun {
				s.logger.Debug("terminal resized, rerunning")
				return waitTrigger, nil
			}
		case terminal.EventKey:
			cmd, found := s.keys.Lookup(ev.Key)
			if !found {
				continue
			}
			switch cmd {
			case keymap.CmdQuit:
				return waitQuit, nil
			case keymap.CmdTrigger:
				return waitTrigger, nil
			case keymap.CmdScreenshot:
				s.pendingShot = true
			}
		}
	}
}

// runOnce executes the command and renders its frame. done reports that the
// loop should end with code.
func (s *Scheduler) runOnce(ctx context.Context, iteration int) (code int, done bool, err error) {
	log := s.logger.WithIteration(iteration)
	log.Debug("running command")

	out, err := s.runner.Run(ctx, s.cfg.Command)
	if err != nil {
		if ctx.Err() != nil {
			return 0, true, nil
		}
		return 0, false, err
	}
	log.Debug("command finished", "exit_code", out.ExitCode, "success", out.Success)

	if !out.Success && s.cfg.Beep {
		if err := s.term.Beep(); err != nil {
			return 0, false, err
		}
	}

	f := s.render(out)
	if err := s.term.Draw(f.Lines, s.cfg.Follow); err != nil {
		return 0, false, err
	}
	if iteration == 1 && s.cfg.Diff == diff.ModePermanent {
		if base, ok := s.diff.Baseline(); ok {
			log.Debug("baseline captured", "bytes", len(base))
		}
	}

	if s.pendingShot {
		if s.cfg.ShotsDir != "" {
			path, err := s.snaps.Save(s.cfg.ShotsDir, f.Lines)
			if err != nil {
				return 0, false, err
			}
			log.Info("screenshot saved", "path", path)
		}
		s.pendingShot = false
	}

	if s.cfg.ErrExit && !out.Success {
		code, err := s.errorExit(ctx, f, out)
		return code, true, err
	}

	if s.exit.Enabled() && s.exit.Observe(f.Visible()) {
		log.Info("exit condition reached", "chgexit", s.cfg.ChgExit, "unchanged", s.exit.Unchanged())
		return 0, true, nil
	}
	return 0, false, nil
}

// render runs the output through color processing, highlighting, layout and
// frame assembly.
func (s *Scheduler) render(out execrunner.Output) frame.Frame {
	text := strings.ToValidUTF8(out.Combined(), "�")
	text = ansitext.Process(text, s.cfg.Color)
	result := s.diff.Apply(text, s.cfg.Diff)

	size := s.term.Size()
	body := layout.Layout(result.Text, size.Columns, s.cfg.Layout)
	return frame.Build(frame.Options{
		NoTitle: s.cfg.NoTitle,
		Follow:  s.cfg.Follow,
		Columns: size.Columns,
		Rows:    size.Rows,
		Left:    s.headerCommand,
		Right:   frame.Timestamp(s.now()),
	}, body)
}

// errorExit shows the error banner, waits for a key, and returns the
// command's exit code (1 if it has none).
func (s *Scheduler) errorExit(ctx context.Context, f frame.Frame, out execrunner.Output) (int, error) {
	size := s.term.Size()
	banner := frame.ErrorBanner(size.Columns)

	var err error
	if s.cfg.Follow {
		err = s.term.Draw([]string{banner}, true)
	} else {
		err = s.term.Draw(withBanner(f.Lines, size.Rows, banner), false)
	}
	if err != nil {
		return 0, err
	}

	s.logger.Info("command failed, waiting for key", "exit_code", out.ExitCode)
	if err := s.term.WaitKey(ctx); err != nil && ctx.Err() == nil {
		return 0, err
	}

	if out.ExitCode <= 0 {
		return 1, nil
	}
	return out.ExitCode, nil
}

// withBanner places banner on the line below the frame, or over the last
// row when the frame already fills the screen.
func withBanner(lines []string, rows int, banner string) []string {
	if len(lines) < rows {
		return append(lines[:len(lines):len(lines)], banner)
	}
	out := make([]string, rows)
	copy(out, lines[:rows])
	out[rows-1] = banner
	return out
}
