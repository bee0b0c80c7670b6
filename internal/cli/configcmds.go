package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/todoforai/todoai-cli/internal/api"
	"github.com/todoforai/todoai-cli/internal/config"
)

// handleConfigCommands executes the config-management flags (--show-config,
// --reset-config, --set-default-*). It returns true when one of them ran and
// the invocation should stop there; no network activity happens on this path.
func handleConfigCommands(w io.Writer, cfgPath string, cfg *config.Config) (bool, error) {
	if flagShowConfig {
		return true, showConfig(w, cfgPath, cfg)
	}

	if flagResetConfig {
		removed, err := config.Reset(cfgPath)
		if err != nil {
			return true, err
		}
		if removed {
			fmt.Fprintf(w, "Configuration reset: %s\n", cfgPath)
		} else {
			fmt.Fprintln(w, "No configuration file to reset")
		}
		return true, nil
	}

	if flagSetDefaultProject == "" && flagSetDefaultAgent == "" && flagSetDefaultAPIURL == "" {
		return false, nil
	}

	if flagSetDefaultProject != "" {
		cfg.SetDefaultProject(flagSetDefaultProject, "")
	}
	if flagSetDefaultAgent != "" {
		cfg.SetDefaultAgent(flagSetDefaultAgent)
	}
	if flagSetDefaultAPIURL != "" {
		cfg.SetDefaultAPIURL(flagSetDefaultAPIURL)
	}
	if err := cfg.SaveTo(cfgPath); err != nil {
		return true, err
	}
	if flagSetDefaultProject != "" {
		fmt.Fprintf(w, "Default project set to: %s\n", flagSetDefaultProject)
	}
	if flagSetDefaultAgent != "" {
		fmt.Fprintf(w, "Default agent set to: %s\n", flagSetDefaultAgent)
	}
	if flagSetDefaultAPIURL != "" {
		fmt.Fprintf(w, "Default API URL set to: %s\n", flagSetDefaultAPIURL)
	}
	return true, nil
}

// showConfig prints the config file location and the effective defaults,
// including built-ins for fields with no saved value.
func showConfig(w io.Writer, cfgPath string, cfg *config.Config) error {
	apiURL := cfg.DefaultAPIURL
	builtin := false
	if apiURL == "" {
		apiURL = api.DefaultBaseURL
		builtin = true
	}

	if flagJSON {
		out := struct {
			ConfigPath string `json:"config_path"`
			*config.Config
			EffectiveAPIURL string `json:"effective_api_url"`
		}{ConfigPath: cfgPath, Config: cfg, EffectiveAPIURL: apiURL}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Config file: %s\n", cfgPath)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE")
	fmt.Fprintf(tw, "default_project_id\t%s\n", orUnset(cfg.DefaultProjectID))
	fmt.Fprintf(tw, "default_project_name\t%s\n", orUnset(cfg.DefaultProjectName))
	fmt.Fprintf(tw, "default_agent_name\t%s\n", orUnset(cfg.DefaultAgentName))
	if builtin {
		fmt.Fprintf(tw, "default_api_url\t%s (built-in)\n", apiURL)
	} else {
		fmt.Fprintf(tw, "default_api_url\t%s\n", apiURL)
	}
	return tw.Flush()
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
