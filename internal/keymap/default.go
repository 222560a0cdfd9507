package keymap

import tea "github.com/charmbracelet/bubbletea"

// Default returns the bindings active while waiting for the next run.
func Default() *Keymap {
	return &Keymap{
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit"},
			{KeyType: tea.KeyRunes, Rune: 'Q', Command: CmdQuit, Description: "Quit"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit"},
			{KeyType: tea.KeySpace, Command: CmdTrigger, Description: "Run the command now"},
			{KeyType: tea.KeyRunes, Rune: 's', Command: CmdScreenshot, Description: "Save a screenshot of the next frame"},
		},
	}
}
