// Package diff computes the highlighted rendering of a capture against an
// earlier one and tracks the previous and baseline captures between runs.
//
// Only insertions are marked. Text that disappeared since the earlier capture
// is not shown, so the output always reads as the current state of the
// command with new text emphasized.
package diff

import (
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
)

// Highlight markers wrapped around inserted text (reverse video, then reset).
const (
	HighlightStart = "\x1b[7m"
	HighlightEnd   = "\x1b[0m"
)

// Highlight returns current with every run of characters that is absent from
// base wrapped in HighlightStart/HighlightEnd. The alignment is a
// character-level longest-common-subsequence diff that respects rune
// boundaries. Deleted runs are dropped.
func Highlight(base, current string) string {
	edits := udiff.Strings(base, current)
	if len(edits) == 0 {
		return current
	}

	var sb strings.Builder
	sb.Grow(len(current) + len(edits)*(len(HighlightStart)+len(HighlightEnd)))

	pos := 0
	for _, edit := range edits {
		// Unchanged text between edits is identical in base and current.
		sb.WriteString(base[pos:edit.Start])
		if edit.New != "" {
			sb.WriteString(HighlightStart)
			sb.WriteString(edit.New)
			sb.WriteString(HighlightEnd)
		}
		pos = edit.End
	}
	sb.WriteString(base[pos:])
	return sb.String()
}
