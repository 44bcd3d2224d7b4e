package output

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTTY reports whether stdin is attached to a terminal.
func IsInputTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
