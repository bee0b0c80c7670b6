package api

import (
	"strings"

	"github.com/todoforai/todoai-cli/internal/suggest"
)

// MatchAgent returns the first agent whose name contains name as a
// case-insensitive substring. When nothing matches it returns an
// AgentNotFoundError listing the available agents and the closest names.
func MatchAgent(agents []Agent, name string) (*Agent, error) {
	needle := strings.ToLower(name)
	for i := range agents {
		if strings.Contains(strings.ToLower(agents[i].Name), needle) {
			return &agents[i], nil
		}
	}

	available := make([]string, len(agents))
	for i, a := range agents {
		available[i] = a.Name
	}
	return nil, &AgentNotFoundError{
		Name:        name,
		Available:   available,
		Suggestions: suggest.Closest(name, available, suggest.DefaultTopN),
	}
}
