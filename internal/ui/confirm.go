package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCancelled reports that the user declined or abandoned an interactive
// prompt. No network call happens after it.
var ErrCancelled = errors.New("cancelled by user")

// Summary is what the user sees before a TODO is dispatched.
type Summary struct {
	ProjectName string
	AgentName   string
	Content     string
}

// Confirmer asks the user to approve a TODO before dispatch. It is injected
// into the dispatch flow so tests can substitute a canned answer.
type Confirmer interface {
	Confirm(s Summary) (bool, error)
}

// StaticConfirmer answers every confirmation the same way. Used for --yes and
// in tests.
type StaticConfirmer struct {
	Answer bool
}

func (c StaticConfirmer) Confirm(Summary) (bool, error) { return c.Answer, nil }

// TerminalConfirmer prompts on the terminal and reads a yes/no answer.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalConfirmer builds a confirmer reading from the controlling
// terminal and writing to stderr.
func NewTerminalConfirmer() (*TerminalConfirmer, error) {
	tty, err := OpenTTY()
	if err != nil {
		return nil, err
	}
	return &TerminalConfirmer{In: tty, Out: os.Stderr}, nil
}

// Confirm shows the summary and asks for consent. Enter defaults to yes.
func (c *TerminalConfirmer) Confirm(s Summary) (bool, error) {
	project := s.ProjectName
	if project == "" {
		project = "(default)"
	}
	agent := s.AgentName
	if agent == "" {
		agent = "(default)"
	}
	fmt.Fprintf(c.Out, "%s %s\n", Muted.Render("Project:"), Accent.Render(project))
	fmt.Fprintf(c.Out, "%s %s\n", Muted.Render("Agent:"), Accent.Render(agent))
	fmt.Fprintf(c.Out, "%s %s\n", Muted.Render("Content:"), Truncate(s.Content, 120))
	fmt.Fprint(c.Out, "Create this TODO? [Y/n] ")

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}

// Truncate shortens a string to max characters, appending "..." if truncated.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
