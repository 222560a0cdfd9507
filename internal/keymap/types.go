// Package keymap maps key presses read while waiting between runs to the
// actions the run loop understands.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	// CmdQuit ends the run loop with a zero exit code.
	CmdQuit Command = "quit"
	// CmdTrigger runs the command immediately.
	CmdTrigger Command = "trigger"
	// CmdScreenshot saves the next frame to the screenshot directory.
	CmdScreenshot Command = "screenshot"
)

// Modifier represents keyboard modifiers.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. Printable keys use tea.KeyRunes
	// together with Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt != (kb.Modifiers&ModAlt != 0) {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()
	if kb.KeyType == tea.KeySpace {
		return prefix + "space"
	}
	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	return prefix + string(kb.Rune)
}

// Keymap is an ordered list of bindings; the first match wins.
type Keymap struct {
	Bindings []KeyBinding
}

// Lookup returns the command bound to msg.
func (km *Keymap) Lookup(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range km.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// BindingsForCommand returns all bindings that trigger cmd.
func (km *Keymap) BindingsForCommand(cmd Command) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}
