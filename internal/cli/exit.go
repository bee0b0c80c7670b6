package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/todoforai/todoai-cli/internal/api"
	"github.com/todoforai/todoai-cli/internal/ui"
)

// Exit codes. Cancellation uses 130 to match the shell convention for SIGINT.
const (
	ExitOK            = 0
	ExitGeneral       = 1
	ExitConfig        = 2
	ExitAgentNotFound = 3
	ExitConnect       = 4
	ExitAPI           = 5
	ExitCancelled     = 130
)

// configError is a user configuration problem (missing value, bad setup).
type configError struct {
	msg string
}

func (e *configError) Error() string { return e.msg }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var (
		cfgErr  *configError
		nfe     *api.AgentNotFoundError
		connErr *api.ConnectError
		apiErr  *api.APIError
	)
	switch {
	case errors.Is(err, ui.ErrCancelled):
		return ExitCancelled
	case errors.Is(err, api.ErrMissingAPIKey), errors.As(err, &cfgErr):
		return ExitConfig
	case errors.As(err, &nfe):
		return ExitAgentNotFound
	case errors.As(err, &connErr):
		return ExitConnect
	case errors.As(err, &apiErr):
		return ExitAPI
	}
	return ExitGeneral
}

// errorKind names the error category for machine-readable output.
func errorKind(err error) string {
	switch ExitCode(err) {
	case ExitConfig:
		return "configuration"
	case ExitAgentNotFound:
		return "agent_not_found"
	case ExitConnect:
		return "network"
	case ExitAPI:
		return "api"
	case ExitCancelled:
		return "cancelled"
	}
	return "error"
}

// PrintError writes err as a concise user-facing message, or as a JSON error
// object when --json is set.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if flagJSON {
		obj := map[string]any{
			"error": err.Error(),
			"kind":  errorKind(err),
		}
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			obj["status"] = apiErr.Status
		}
		json.NewEncoder(w).Encode(obj)
		return
	}
	if errors.Is(err, ui.ErrCancelled) {
		fmt.Fprintln(w, "Cancelled")
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
