package cli

import (
	"github.com/todoforai/todoai-cli/internal/api"
	"github.com/todoforai/todoai-cli/internal/config"
)

// Environment variables consulted during resolution. TODO4AI_API_KEY is the
// legacy spelling still honored for older setups.
const (
	envAPIKey       = "TODOFORAI_API_KEY"
	envAPIKeyLegacy = "TODO4AI_API_KEY"
	envAPIURL       = "TODOFORAI_API_URL"
	envProject      = "TODOFORAI_PROJECT_ID"
	envAgent        = "TODOFORAI_AGENT"
)

// params is the resolved parameter set for one invocation.
type params struct {
	ProjectID   string
	ProjectName string
	AgentName   string
	APIURL      string
	APIKey      string
	TodoID      string
}

// resolveParams applies the precedence CLI flag > environment variable >
// config default > built-in default, independently for each field.
func resolveParams(project, agent, apiURL, todoID string, getenv func(string) string, cfg *config.Config) params {
	p := params{TodoID: todoID}

	p.ProjectID = firstNonEmpty(project, getenv(envProject), cfg.DefaultProjectID)
	if p.ProjectID != "" && p.ProjectID == cfg.DefaultProjectID {
		p.ProjectName = cfg.DefaultProjectName
	}
	p.AgentName = firstNonEmpty(agent, getenv(envAgent), cfg.DefaultAgentName)
	p.APIURL = firstNonEmpty(apiURL, getenv(envAPIURL), cfg.DefaultAPIURL, api.DefaultBaseURL)
	p.APIKey = firstNonEmpty(getenv(envAPIKey), getenv(envAPIKeyLegacy))
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
