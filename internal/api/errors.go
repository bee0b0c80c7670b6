package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey reports that no API key was available from the environment.
var ErrMissingAPIKey = errors.New("TODOFORAI_API_KEY environment variable is not set")

// APIError is a non-2xx response from the service. It carries the HTTP status
// and whatever the server said.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Body)
}

// ConnectError is a network-level failure reaching the service (DNS, refused
// connection, timeout), as opposed to an error response from it.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("cannot reach %s: %v", e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// AgentNotFoundError reports that a requested agent name matched no agent.
type AgentNotFoundError struct {
	Name        string
	Available   []string
	Suggestions []string
}

func (e *AgentNotFoundError) Error() string {
	msg := fmt.Sprintf("agent %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}
