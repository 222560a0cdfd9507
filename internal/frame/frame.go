// Package frame assembles the title header and the laid-out command output
// into the lines drawn for one run.
package frame

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TitleLines is the number of lines the title occupies: the header itself
// and a blank separator.
const TitleLines = 2

// TimestampLayout formats the clock shown at the right of the header.
const TimestampLayout = "Mon Jan _2 15:04:05 2006"

// Frame is one complete screen of output. It is built once per run and not
// modified afterwards.
type Frame struct {
	// Lines holds the header lines (if any) followed by the body lines.
	Lines []string
	// HeaderLines is the number of leading lines that belong to the title.
	HeaderLines int
}

// Body returns the lines below the title.
func (f Frame) Body() []string {
	return f.Lines[f.HeaderLines:]
}

// Visible returns the body lines joined by newlines. The title is excluded so
// that a ticking clock never counts as a change in output.
func (f Frame) Visible() string {
	return strings.Join(f.Body(), "\n")
}

// Options controls how a frame is assembled.
type Options struct {
	// NoTitle omits the header and its separator.
	NoTitle bool
	// Follow disables row clipping; output is appended rather than redrawn.
	Follow bool
	// Columns and Rows are the terminal dimensions.
	Columns int
	Rows    int
	// Left is the header text (see HeaderLeft); Right is right-aligned.
	Left  string
	Right string
}

// Build combines the title and body into a Frame. Outside follow mode the body
// is clipped to the rows left after the title.
func Build(opts Options, body []string) Frame {
	headerLines := 0
	if !opts.NoTitle {
		headerLines = TitleLines
	}

	if !opts.Follow {
		available := max(opts.Rows-headerLines, 0)
		if len(body) > available {
			body = body[:available]
		}
	}

	lines := make([]string, 0, headerLines+len(body))
	if headerLines > 0 {
		lines = append(lines, Header(opts.Left, opts.Right, opts.Columns), "")
	}
	lines = append(lines, body...)

	return Frame{Lines: lines, HeaderLines: headerLines}
}

// HeaderLeft formats the left part of the title: the interval with one
// decimal and the command as typed.
func HeaderLeft(command []string, interval time.Duration) string {
	return fmt.Sprintf("Every %.1fs: %s", interval.Seconds(), strings.Join(command, " "))
}

// Timestamp formats t for the right side of the title.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Header lays out left and right on one line of width columns with right
// ending in the last column. When there is no room for right plus a
// separating space, only the truncated left part is returned.
func Header(left, right string, width int) string {
	width = max(width, 0)
	left = ansi.Truncate(left, width, "")

	rightWidth := ansi.StringWidth(right)
	if width <= rightWidth+1 {
		return left
	}

	maxLeft := width - rightWidth - 1
	if ansi.StringWidth(left) > maxLeft {
		left = ansi.Truncate(left, maxLeft, "")
	}

	pad := maxLeft - ansi.StringWidth(left)

	var sb strings.Builder
	sb.WriteString(left)
	sb.WriteString(strings.Repeat(" ", pad+1))
	sb.WriteString(right)
	return sb.String()
}

// errorBannerText is shown when the command fails and error exit is enabled.
const errorBannerText = "command exit with a non-zero status, press a key to exit"

var errorBannerStyle = lipgloss.NewStyle().Reverse(true)

// ErrorBanner returns the notice drawn below the output when error exit
// fires, truncated to width.
func ErrorBanner(width int) string {
	return errorBannerStyle.Render(ansi.Truncate(errorBannerText, max(width, 1), ""))
}
