package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/todoforai/todoai-cli/internal/api"
	"github.com/todoforai/todoai-cli/internal/config"
	"github.com/todoforai/todoai-cli/internal/history"
	"github.com/todoforai/todoai-cli/internal/ui"
)

// historyDBPath is where created TODOs are recorded; overridable in tests.
var historyDBPath = history.DefaultPath()

// todoResult is the JSON shape printed with --json.
type todoResult struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	AgentName   string `json:"agentName,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	FrontendURL string `json:"frontend_url"`
}

// runCreate implements the default invocation: resolve parameters, confirm,
// create the TODO, print the result.
func runCreate(cmd *cobra.Command, args []string) error {
	cfgPath := config.ResolvePath(flagConfigPath)
	cfg := config.LoadFrom(cfgPath)

	out := cmd.OutOrStdout()
	errw := cmd.ErrOrStderr()

	if handled, err := handleConfigCommands(out, cfgPath, cfg); handled {
		return err
	}

	if interactive() {
		ui.Logo(errw)
	}

	p := resolveParams(flagProject, flagAgent, flagAPIURL, flagTodoID, getenv, cfg)

	// Client construction fails on a missing API key before anything touches
	// the network.
	client, err := api.New(p.APIURL, p.APIKey, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagSafe {
		if err := client.ValidateKey(ctx); err != nil {
			return err
		}
	}

	content, err := readContent(cmd, args, errw)
	if err != nil {
		return err
	}

	agent, err := resolveAgent(ctx, client, p.AgentName, cfg, cfgPath, errw)
	if err != nil {
		return err
	}

	projectID, projectName, err := resolveProject(ctx, client, p, cfg, cfgPath, errw)
	if err != nil {
		return err
	}

	todoID := p.TodoID
	if todoID == "" {
		todoID = uuid.NewString()
	}

	if !flagYes && interactive() {
		agentName := ""
		if agent != nil {
			agentName = agent.Name
		}
		ok, err := confirm(ui.Summary{ProjectName: projectName, AgentName: agentName, Content: content})
		if err != nil {
			return err
		}
		if !ok {
			return ui.ErrCancelled
		}
	}

	req := api.CreateTodo{
		ID:        todoID,
		ProjectID: projectID,
		Content:   content,
	}
	if agent != nil {
		req.AgentID = agent.ID
		req.AgentName = agent.Name
	}
	todo, err := client.CreateTodo(ctx, req)
	if err != nil {
		return err
	}

	url := client.FrontendURL(todo.ProjectID, todo.ID)
	recordHistory(ctx, history.Entry{
		TodoID:      todo.ID,
		ProjectID:   todo.ProjectID,
		ProjectName: projectName,
		AgentName:   req.AgentName,
		Content:     ui.Truncate(content, 200),
		URL:         url,
	})

	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(todoResult{
			ID:          todo.ID,
			ProjectID:   todo.ProjectID,
			AgentName:   firstNonEmpty(todo.AgentName, req.AgentName),
			Status:      todo.Status,
			CreatedAt:   todo.CreatedAt,
			FrontendURL: url,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(errw, "%s %s\n", ui.Muted.Render("TODO:"), ui.Link.Render(url))
	}

	if flagWatch {
		return watchTodo(ctx, client, todo.ID, out, errw)
	}
	return nil
}

// readContent returns the TODO content from the positional arguments, piped
// stdin, or a single-line terminal prompt.
func readContent(cmd *cobra.Command, args []string, errw io.Writer) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprint(errw, "TODO> ")
		line, err := bufio.NewReader(f).ReadString('\n')
		if err != nil && line == "" {
			return "", &configError{msg: "empty input"}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return "", &configError{msg: "empty input"}
		}
		return line, nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", &configError{msg: "empty input"}
	}
	return content, nil
}

// resolveAgent turns the resolved agent name into a concrete agent via
// partial match, or lets the user pick one interactively when no name is
// resolved. Returns nil when the server should use its default agent.
func resolveAgent(ctx context.Context, client *api.Client, name string, cfg *config.Config, cfgPath string, errw io.Writer) (*api.Agent, error) {
	if name != "" {
		agents, err := client.ListAgents(ctx)
		if err != nil {
			return nil, err
		}
		agent, err := api.MatchAgent(agents, name)
		if err != nil {
			var nfe *api.AgentNotFoundError
			if errors.As(err, &nfe) && len(nfe.Available) > 0 {
				fmt.Fprintln(errw, "Available agents:")
				for _, a := range nfe.Available {
					fmt.Fprintf(errw, "  - %s\n", a)
				}
			}
			return nil, err
		}
		log.Debug().Str("agent", agent.Name).Str("query", name).Msg("agent matched")
		return agent, nil
	}

	if !interactive() {
		// Nothing resolved and nobody to ask: let the server pick.
		return nil, nil
	}

	agents, err := client.ListAgents(ctx)
	if err != nil {
		return nil, err
	}
	switch len(agents) {
	case 0:
		return nil, nil
	case 1:
		fmt.Fprintf(errw, "Auto-selected only available agent: %s\n", agents[0].Name)
		return &agents[0], nil
	}

	opts := make([]ui.Option, len(agents))
	defaultID := ""
	for i, a := range agents {
		opts[i] = ui.Option{ID: a.ID, Name: a.Name}
		if a.Name == cfg.DefaultAgentName {
			defaultID = a.ID
		}
	}
	choice, err := pick("Select an agent", opts, defaultID)
	if err != nil {
		return nil, err
	}
	for i := range agents {
		if agents[i].ID == choice.ID {
			cfg.SetDefaultAgent(agents[i].Name)
			saveConfig(cfg, cfgPath)
			return &agents[i], nil
		}
	}
	return nil, nil
}

// resolveProject returns the project to create the TODO in. A resolved
// project id is used as-is without fetching the project list; otherwise the
// list is fetched and a single project auto-selects, or the user picks one.
func resolveProject(ctx context.Context, client *api.Client, p params, cfg *config.Config, cfgPath string, errw io.Writer) (string, string, error) {
	if p.ProjectID != "" {
		return p.ProjectID, firstNonEmpty(p.ProjectName, p.ProjectID), nil
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return "", "", err
	}
	switch len(projects) {
	case 0:
		return "", "", &configError{msg: "no projects available for this API key"}
	case 1:
		fmt.Fprintf(errw, "Auto-selected only available project: %s\n", projects[0].Name)
		cfg.SetDefaultProject(projects[0].ID, projects[0].Name)
		saveConfig(cfg, cfgPath)
		return projects[0].ID, projects[0].Name, nil
	}

	if !interactive() {
		return "", "", &configError{msg: "no project specified; use --project or --set-default-project"}
	}

	opts := make([]ui.Option, len(projects))
	for i, pr := range projects {
		opts[i] = ui.Option{ID: pr.ID, Name: pr.Name}
	}
	choice, err := pick("Select a project", opts, cfg.DefaultProjectID)
	if err != nil {
		return "", "", err
	}
	cfg.SetDefaultProject(choice.ID, choice.Name)
	saveConfig(cfg, cfgPath)
	return choice.ID, choice.Name, nil
}

// watchTodo streams execution output for the created TODO until it reaches a
// terminal status or the watch timeout expires.
func watchTodo(ctx context.Context, client *api.Client, todoID string, out, errw io.Writer) error {
	timeout := time.Duration(flagTimeout) * time.Second
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := client.WatchTodo(ctx, todoID, func(ev api.Event) bool {
		switch ev.Type {
		case api.EventMessage:
			var p api.MessagePayload
			if json.Unmarshal(ev.Payload, &p) == nil {
				fmt.Fprint(out, p.Content)
			}
		case api.EventStatus:
			var p api.StatusPayload
			if json.Unmarshal(ev.Payload, &p) == nil && api.IsTerminalStatus(p.Status) {
				fmt.Fprintf(errw, "\n%s %s\n", ui.Muted.Render("Status:"), p.Status)
				return false
			}
		default:
			log.Debug().Str("type", ev.Type).Msg("ignoring event")
		}
		return true
	})
	if err == context.DeadlineExceeded {
		fmt.Fprintf(errw, "Watch timed out after %s\n", timeout)
		return nil
	}
	return err
}

// confirm runs the configured confirmer, defaulting to the terminal prompt.
func confirm(s ui.Summary) (bool, error) {
	c := confirmer
	if c == nil {
		tc, err := ui.NewTerminalConfirmer()
		if err != nil {
			return false, err
		}
		c = tc
	}
	return c.Confirm(s)
}

// pick is the picker seam; tests replace it to avoid a real TUI.
var pick = ui.Pick

// recordHistory stores the created TODO locally. Failures are logged and
// otherwise ignored; history never blocks a successful create.
func recordHistory(ctx context.Context, e history.Entry) {
	hs, err := history.Open(historyDBPath)
	if err != nil {
		log.Debug().Err(err).Msg("history unavailable")
		return
	}
	defer hs.Close()
	if err := hs.Record(ctx, e); err != nil {
		log.Debug().Err(err).Msg("history record failed")
	}
}

// saveConfig persists picker choices; a read-only config dir only costs the
// remembered default.
func saveConfig(cfg *config.Config, path string) {
	if err := cfg.SaveTo(path); err != nil {
		log.Debug().Err(err).Msg("config save failed")
	}
}
