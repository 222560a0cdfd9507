package diff

import (
	"fmt"
	"strings"
)

// Mode selects what a capture is compared against for display.
type Mode int

const (
	// ModeNone disables highlighting.
	ModeNone Mode = iota
	// ModeChanges highlights insertions relative to the previous capture.
	ModeChanges
	// ModePermanent highlights insertions relative to the first capture.
	ModePermanent
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeChanges:
		return "changes"
	case ModePermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration value into a Mode. The empty string and
// "none" disable highlighting; "1" is accepted as a synonym for "permanent".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "changes":
		return ModeChanges, nil
	case "permanent", "1":
		return ModePermanent, nil
	default:
		return ModeNone, fmt.Errorf("unknown differences mode %q (expected changes or permanent)", s)
	}
}

// Result is the outcome of applying one capture to a State.
type Result struct {
	// Text is the capture, with insertions marked when a mode is active.
	Text string
	// Changed is true when the capture differs from the immediately preceding
	// one. It is always false for the first capture.
	Changed bool
}

// State holds the rolling previous capture and the permanent-mode baseline.
// The zero value is ready to use. A State is not safe for concurrent use; it
// belongs to the scheduling loop.
type State struct {
	previous    string
	hasPrevious bool

	baseline    string
	hasBaseline bool
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// Apply records current as the latest capture and returns its rendering for
// mode. The previous capture is updated on every call regardless of mode.
// The baseline is set by the first ModePermanent call and never replaced.
func (s *State) Apply(current string, mode Mode) Result {
	changed := s.hasPrevious && s.previous != current

	text := current
	switch mode {
	case ModeChanges:
		if s.hasPrevious {
			text = Highlight(s.previous, current)
		}
	case ModePermanent:
		if !s.hasBaseline {
			s.baseline = current
			s.hasBaseline = true
		} else {
			text = Highlight(s.baseline, current)
		}
	}

	s.previous = current
	s.hasPrevious = true

	return Result{Text: text, Changed: changed}
}

// Baseline returns the permanent-mode baseline, if one has been captured.
func (s *State) Baseline() (string, bool) {
	return s.baseline, s.hasBaseline
}
