// Package ansitext strips or preserves ANSI escape sequences in captured
// command output before it is diffed and laid out.
package ansitext

import "strings"

const (
	esc = '\x1b'
	csi = '['
)

// ColorMode selects whether escape sequences survive processing.
type ColorMode string

const (
	// ColorAuto strips escape sequences (the default).
	ColorAuto ColorMode = "auto"
	// ColorAlways preserves escape sequences verbatim.
	ColorAlways ColorMode = "always"
	// ColorNever strips escape sequences.
	ColorNever ColorMode = "never"
)

// ValidColorModes returns the accepted color mode strings.
func ValidColorModes() []string {
	return []string{string(ColorAuto), string(ColorAlways), string(ColorNever)}
}

// Process applies the policy for mode: only ColorAlways keeps escape
// sequences, every other mode strips them.
func Process(text string, mode ColorMode) string {
	if mode == ColorAlways {
		return Passthrough(text)
	}
	return Strip(text)
}

// Passthrough returns text unchanged.
func Passthrough(text string) string {
	return text
}

// Strip removes every CSI sequence (ESC '[' params final-byte) from text.
// Other bytes, including a lone ESC or a sequence cut off at the end of the
// input, are kept as-is.
func Strip(text string) string {
	if strings.IndexByte(text, esc) < 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] == esc && i+1 < len(text) && text[i+1] == csi {
			if n, complete := csiLen(text, i); complete {
				i += n
				continue
			}
		}
		sb.WriteByte(text[i])
		i++
	}
	return sb.String()
}

// SequenceLen reports the byte length of the escape sequence that starts at
// s[i]. The sequence is ESC, optionally followed by '[' and every byte up to
// and including the first final byte in '@'..'~'. A sequence truncated by the
// end of s extends to the end of s. Returns 0 when s[i] is not ESC.
func SequenceLen(s string, i int) int {
	if i >= len(s) || s[i] != esc {
		return 0
	}
	if i+1 >= len(s) || s[i+1] != csi {
		return 1
	}
	n, _ := csiLen(s, i)
	return n
}

// csiLen measures a CSI sequence starting at s[i] (which must be ESC '[').
func csiLen(s string, i int) (int, bool) {
	for j := i + 2; j < len(s); j++ {
		if isFinalByte(s[j]) {
			return j - i + 1, true
		}
	}
	return len(s) - i, false
}

func isFinalByte(b byte) bool {
	return b >= '@' && b <= '~'
}
