// Package cli defines the cobra command tree for the todoai CLI.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/todoforai/todoai-cli/internal/logging"
	"github.com/todoforai/todoai-cli/internal/ui"
)

var (
	flagProject    string
	flagAgent      string
	flagTodoID     string
	flagAPIURL     string
	flagJSON       bool
	flagYes        bool
	flagWatch      bool
	flagTimeout    int
	flagSafe       bool
	flagDebug      bool
	flagConfigPath string

	flagSetDefaultProject string
	flagSetDefaultAgent   string
	flagSetDefaultAPIURL  string
	flagShowConfig        bool
	flagResetConfig       bool
)

// Swappable seams for tests.
var (
	log         = logging.Discard()
	getenv      = os.Getenv
	interactive = ui.IsInteractive
	confirmer   ui.Confirmer // nil selects the terminal confirmer at runtime
)

// rootCmd is the top-level todoai command: it creates a TODO from the prompt
// arguments or piped stdin.
var rootCmd = &cobra.Command{
	Use:   "todoai [prompt...]",
	Short: "Create TODOs on TODOforAI from the command line",
	Long: `todoai turns piped or typed text into a TODO on the TODOforAI service.

Project, agent, and API URL are resolved per field from the CLI flag, then the
environment (TODOFORAI_PROJECT_ID, TODOFORAI_AGENT, TODOFORAI_API_URL), then
the saved defaults in the config file, then built-in defaults. The API key
always comes from TODOFORAI_API_KEY.

When project or agent cannot be resolved and the session is interactive, a
picker is shown and the choice is remembered as the new default.`,
	Example: `  todoai "Research AI trends"
  echo "Debug auth issue" | todoai --agent gmail --yes
  todoai --project proj-123 --json "Quick task"
  todoai --set-default-agent terminal
  todoai --show-config`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if flagDebug {
			level = "debug"
		}
		log = logging.New(nil, level)
	},
	RunE: runCreate,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagProject, "project", "p", "", "project ID")
	f.StringVarP(&flagAgent, "agent", "a", "", "agent name (partial match)")
	f.StringVar(&flagTodoID, "todo-id", "", "custom TODO ID (auto-generated if not provided)")
	f.StringVar(&flagAPIURL, "api-url", "", "API URL (overrides environment and saved default)")
	f.BoolVar(&flagJSON, "json", false, "output result as JSON")
	f.BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt")
	f.BoolVar(&flagWatch, "watch", false, "stream execution output after creating the TODO")
	f.IntVar(&flagTimeout, "timeout", 300, "watch timeout in seconds")
	f.BoolVar(&flagSafe, "safe", false, "validate the API key before dispatching")
	f.StringVar(&flagConfigPath, "config-path", "", "custom config file path")

	f.StringVar(&flagSetDefaultProject, "set-default-project", "", "set the default project ID and exit")
	f.StringVar(&flagSetDefaultAgent, "set-default-agent", "", "set the default agent name and exit")
	f.StringVar(&flagSetDefaultAPIURL, "set-default-api-url", "", "set the default API URL and exit")
	f.BoolVar(&flagShowConfig, "show-config", false, "show the current configuration and exit")
	f.BoolVar(&flagResetConfig, "reset-config", false, "delete the configuration file and exit")

	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
