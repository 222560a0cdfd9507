// Package layout splits captured output into display lines that fit the
// terminal width.
//
// Width is measured per rune in terminal columns. Escape sequences are
// copied into the line they appear in and take no columns, so colored output
// wraps at the same place as plain output.
package layout

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Iron-Ham/watch/internal/ansitext"
)

// Policy decides what happens to text beyond the terminal width.
type Policy int

const (
	// Wrap continues overflowing text on the next display line.
	Wrap Policy = iota
	// Truncate drops the rest of a logical line after the first overflow.
	Truncate
)

// String returns a human-readable name for the policy.
func (p Policy) String() string {
	if p == Truncate {
		return "truncate"
	}
	return "wrap"
}

// Lines yields the display lines for text at the given width. Every range
// over the returned sequence walks text from the start. A trailing newline
// produces a trailing empty line. Width is clamped to at least 1.
func Lines(text string, width int, policy Policy) iter.Seq[string] {
	width = max(width, 1)

	return func(yield func(string) bool) {
		var line strings.Builder
		col := 0
		truncated := false

		emit := func() bool {
			s := line.String()
			line.Reset()
			col = 0
			return yield(s)
		}

		for i := 0; i < len(text); {
			switch text[i] {
			case '\r':
				i++
				continue
			case '\n':
				i++
				truncated = false
				if !emit() {
					return
				}
				continue
			}

			if n := ansitext.SequenceLen(text, i); n > 0 {
				line.WriteString(text[i : i+n])
				i += n
				continue
			}

			r, size := utf8.DecodeRuneInString(text[i:])
			w := runewidth.RuneWidth(r)

			switch {
			case policy == Truncate && (truncated || col+w > width):
				truncated = true
			case policy == Wrap && w > 0 && col+w > width:
				if !emit() {
					return
				}
				line.WriteString(text[i : i+size])
				col = w
			default:
				line.WriteString(text[i : i+size])
				col += w
			}
			i += size
		}

		yield(line.String())
	}
}

// Layout returns all display lines for text. See Lines.
func Layout(text string, width int, policy Policy) []string {
	return slices.Collect(Lines(text, width, policy))
}
