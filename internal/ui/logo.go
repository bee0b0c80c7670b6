package ui

import (
	"fmt"
	"io"
)

// Logo writes the startup wordmark. Shown only on interactive sessions.
func Logo(w io.Writer) {
	fmt.Fprintf(w, "%s%s%s\n", Accent.Render("TODO"), Muted.Render("for"), Accent.Render("AI"))
}
