package render

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// TerminalWidth returns the number of columns of the terminal behind f.
func TerminalWidth(f *os.File) (int, error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, fmt.Errorf("getting terminal size: %w", err)
	}
	if ws.Col == 0 {
		return 0, fmt.Errorf("terminal reports zero columns")
	}
	return int(ws.Col), nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), getTermios)
	return err == nil
}
