// Package terminal owns the TTY while watch is running: raw mode, the
// alternate screen, key and resize events, and frame drawing.
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/Iron-Ham/watch/internal/errors"
)

// Fallback dimensions when neither an override nor the TTY reports a size.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

// EventType distinguishes the events delivered by Poll.
type EventType int

const (
	// EventKey is a key press.
	EventKey EventType = iota
	// EventResize is a change of terminal size.
	EventResize
)

// Event is a single input or resize notification.
type Event struct {
	Type EventType
	Key  tea.KeyMsg
}

// Size is a terminal size in cells.
type Size struct {
	Columns int
	Rows    int
}

// Options configures Open.
type Options struct {
	// Columns and Rows override the detected size when positive.
	Columns int
	Rows    int
}

type fileDescriptor interface {
	Fd() uintptr
}

// Terminal is an opened terminal session. Close must be called to restore
// the original terminal state.
type Terminal struct {
	out  io.Writer
	opts Options

	sizeFd   int
	hasSize  bool
	rawFd    int
	rawState *term.State

	reader     cancelreader.CancelReader
	events     chan Event
	inputDone  chan struct{}
	done       chan struct{}
	stopResize func()
	closeOnce  sync.Once
}

// Open prepares in and out for watch. When in is a TTY it is switched to raw
// mode; the alternate screen is entered and the cursor hidden on out.
func Open(in io.Reader, out io.Writer, opts Options) (*Terminal, error) {
	t := &Terminal{
		out:       out,
		opts:      opts,
		events:    make(chan Event, 16),
		inputDone: make(chan struct{}),
		done:      make(chan struct{}),
	}

	if f, ok := out.(fileDescriptor); ok && term.IsTerminal(int(f.Fd())) {
		t.sizeFd, t.hasSize = int(f.Fd()), true
	}

	if f, ok := in.(fileDescriptor); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, errors.NewIOError("enter raw mode", fmt.Errorf("%w: %w", errors.ErrTerminal, err))
		}
		t.rawFd, t.rawState = fd, state
		if !t.hasSize {
			t.sizeFd, t.hasSize = fd, true
		}
	}

	// Only a TTY gets the cancelable file reader; pipes and regular files
	// are read through the generic fallback.
	src := in
	if t.rawState == nil {
		src = struct{ io.Reader }{in}
	}
	reader, err := cancelreader.NewReader(src)
	if err != nil {
		t.restore()
		return nil, errors.NewIOError("open input reader", fmt.Errorf("%w: %w", errors.ErrTerminal, err))
	}
	t.reader = reader

	if _, err := io.WriteString(out, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor); err != nil {
		_ = reader.Close()
		t.restore()
		return nil, errors.NewIOError("enter alternate screen", fmt.Errorf("%w: %w", errors.ErrTerminal, err))
	}

	go t.readInput()
	t.stopResize = watchResize(t.notifyResize)
	return t, nil
}

func (t *Terminal) readInput() {
	defer close(t.inputDone)

	buf := make([]byte, 256)
	for {
		n, err := t.reader.Read(buf)
		for _, key := range DecodeKeys(buf[:n]) {
			select {
			case t.events <- Event{Type: EventKey, Key: key}:
			case <-t.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// notifyResize drops the event when one is already queued.
func (t *Terminal) notifyResize() {
	select {
	case t.events <- Event{Type: EventResize}:
	default:
	}
}

// Close leaves the alternate screen, shows the cursor, and restores the
// original terminal mode. It is safe to call more than once.
func (t *Terminal) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		if t.stopResize != nil {
			t.stopResize()
		}
		t.reader.Cancel()
		_ = t.reader.Close()

		if _, werr := io.WriteString(t.out, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode); werr != nil {
			err = errors.NewIOError("leave alternate screen", fmt.Errorf("%w: %w", errors.ErrTerminal, werr))
		}
		if rerr := t.restore(); rerr != nil && err == nil {
			err = rerr
		}
	})
	return err
}

func (t *Terminal) restore() error {
	if t.rawState == nil {
		return nil
	}
	state := t.rawState
	t.rawState = nil
	if err := term.Restore(t.rawFd, state); err != nil {
		return errors.NewIOError("restore terminal mode", fmt.Errorf("%w: %w", errors.ErrTerminal, err))
	}
	return nil
}

// Size returns the terminal size: configured overrides first, then the TTY,
// then 80x24. Both dimensions are at least 1.
func (t *Terminal) Size() Size {
	cols, rows := t.opts.Columns, t.opts.Rows
	if (cols <= 0 || rows <= 0) && t.hasSize {
		if w, h, err := term.GetSize(t.sizeFd); err == nil {
			if cols <= 0 {
				cols = w
			}
			if rows <= 0 {
				rows = h
			}
		}
	}
	return resolveSize(cols, rows)
}

func resolveSize(cols, rows int) Size {
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return Size{Columns: max(cols, 1), Rows: max(rows, 1)}
}

// Poll waits up to timeout for a key or resize event. It reports false when
// the timeout elapsed first, and returns ctx.Err() if ctx is done.
func (t *Terminal) Poll(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.events:
		return ev, true, nil
	case <-ctx.Done():
		return Event{}, false, ctx.Err()
	case <-timer.C:
		return Event{}, false, nil
	}
}

// WaitKey blocks until any key is pressed. It returns immediately once the
// input has been closed, since no key can arrive.
func (t *Terminal) WaitKey(ctx context.Context) error {
	for {
		select {
		case ev := <-t.events:
			if ev.Type == EventKey {
				return nil
			}
		case <-t.inputDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Draw writes a frame. Normally the screen is cleared and the frame drawn
// from the top-left corner; in follow mode the lines are appended.
func (t *Terminal) Draw(lines []string, follow bool) error {
	var sb strings.Builder
	if follow {
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\r\n")
		}
	} else {
		sb.WriteString(ansi.EraseEntireScreen)
		sb.WriteString(ansi.CursorHomePosition)
		sb.WriteString(strings.Join(lines, "\r\n"))
	}

	if _, err := io.WriteString(t.out, sb.String()); err != nil {
		return errors.NewIOError("draw frame", fmt.Errorf("%w: %w", errors.ErrTerminal, err))
	}
	return nil
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() error {
	if _, err := t.out.Write([]byte{byte(ansi.BEL)}); err != nil {
		return errors.NewIOError("beep", fmt.Errorf("%w: %w", errors.ErrTerminal, err))
	}
	return nil
}
