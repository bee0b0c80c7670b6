package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether the process has a terminal for prompts.
// stderr is checked rather than stdin because stdin usually carries the piped
// TODO content.
func IsInteractive() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// OpenTTY opens the controlling terminal for reading, so prompts keep working
// while stdin is a pipe.
func OpenTTY() (io.ReadCloser, error) {
	for _, name := range []string{"/dev/tty", "CONIN$"} {
		if f, err := os.Open(name); err == nil {
			return f, nil
		}
	}
	// Last resort; Close must not close the real stdin.
	return io.NopCloser(os.Stdin), nil
}
