package terminal

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/watch/internal/ansitext"
)

const (
	byteEsc = 0x1b
	byteDel = 0x7f
)

// csiKeys maps the final byte of short cursor-key sequences.
var csiKeys = map[byte]tea.KeyType{
	'A': tea.KeyUp,
	'B': tea.KeyDown,
	'C': tea.KeyRight,
	'D': tea.KeyLeft,
	'H': tea.KeyHome,
	'F': tea.KeyEnd,
}

// DecodeKeys splits raw terminal input into key messages. Control bytes map
// to their tea control key types, escape sequences become a single key, and
// an escape before a printable character marks it as alt-modified.
func DecodeKeys(b []byte) []tea.KeyMsg {
	var keys []tea.KeyMsg
	s := string(b)
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == byteEsc:
			key, n := decodeEscape(s, i)
			keys = append(keys, key)
			i += n
		case c == ' ':
			keys = append(keys, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			i++
		case c < 0x20 || c == byteDel:
			keys = append(keys, tea.KeyMsg{Type: tea.KeyType(c)})
			i++
		default:
			r, n := utf8.DecodeRuneInString(s[i:])
			if r != utf8.RuneError || n > 1 {
				keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
			i += n
		}
	}
	return keys
}

func decodeEscape(s string, i int) (tea.KeyMsg, int) {
	if i+1 >= len(s) {
		return tea.KeyMsg{Type: tea.KeyEsc}, 1
	}

	if s[i+1] == '[' {
		n := ansitext.SequenceLen(s, i)
		if n == 3 {
			if kt, ok := csiKeys[s[i+2]]; ok {
				return tea.KeyMsg{Type: kt}, n
			}
		}
		return tea.KeyMsg{Type: tea.KeyEsc}, n
	}

	r, n := utf8.DecodeRuneInString(s[i+1:])
	if r == utf8.RuneError || r < 0x20 || r == byteDel {
		return tea.KeyMsg{Type: tea.KeyEsc}, 1
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}, 1 + n
}
