package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "simple rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}},
			expected: true,
		},
		{
			name:     "rune is case sensitive",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}},
			expected: false,
		},
		{
			name:     "pasted runes never match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q', 'x'}},
			expected: false,
		},
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeySpace},
			msg:      tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyCtrlC},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: false,
		},
		{
			name:     "alt modifier required",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}},
			expected: false,
		},
		{
			name:     "alt modifier unexpected",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'q'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}, Alt: true},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDefaultLookup(t *testing.T) {
	km := Default()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		want    Command
		wantHit bool
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, CmdQuit, true},
		{"Q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}}, CmdQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit, true},
		{"space triggers", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, CmdTrigger, true},
		{"s screenshots", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, CmdScreenshot, true},
		{"other rune ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, "", false},
		{"enter ignored", tea.KeyMsg{Type: tea.KeyEnter}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Lookup(tt.msg)
			if ok != tt.wantHit || got != tt.want {
				t.Errorf("Lookup() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantHit)
			}
		})
	}
}

func TestBindingsForCommand(t *testing.T) {
	km := Default()

	quit := km.BindingsForCommand(CmdQuit)
	if len(quit) != 3 {
		t.Fatalf("BindingsForCommand(quit) returned %d bindings, want 3", len(quit))
	}

	var names []string
	for _, b := range quit {
		names = append(names, b.String())
	}
	want := []string{"q", "Q", "ctrl+c"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("binding %d String() = %q, want %q", i, names[i], want[i])
		}
	}

	if got := km.BindingsForCommand("missing"); got != nil {
		t.Errorf("BindingsForCommand(missing) = %v, want nil", got)
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{KeyType: tea.KeySpace}, "space"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 's'}, "s"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
	}

	for _, tt := range tests {
		if got := tt.binding.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
