package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/todoforai/todoai-cli/internal/api"
	"github.com/todoforai/todoai-cli/internal/config"
)

func TestSetDefaultThenResolve(t *testing.T) {
	resetState(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	out, _, err := runRoot(t, "", "--config-path", cfgPath, "--set-default-project", "proj-42")
	if err != nil {
		t.Fatalf("set-default-project: %v", err)
	}
	if !strings.Contains(out, "Default project set to: proj-42") {
		t.Errorf("unexpected output: %s", out)
	}

	cfg := config.LoadFrom(cfgPath)
	if cfg.DefaultProjectID != "proj-42" {
		t.Fatalf("default project: got %q", cfg.DefaultProjectID)
	}

	// The saved default is used on a later run. No agents handler is needed:
	// non-interactive with no agent name skips the lookup entirely.
	resetState(t)
	stub := newStubAPI(t)
	getenv = envFunc(map[string]string{envAPIKey: "test-key"})
	_, _, err = runRoot(t, "some task\n",
		"--yes", "--config-path", cfgPath,
		"--api-url", stub.ts.URL,
	)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stub.lastCreate.ProjectID != "proj-42" {
		t.Errorf("project: got %q, want %q", stub.lastCreate.ProjectID, "proj-42")
	}
}

func TestSetMultipleDefaults(t *testing.T) {
	resetState(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	out, _, err := runRoot(t, "",
		"--config-path", cfgPath,
		"--set-default-agent", "terminal",
		"--set-default-api-url", "http://localhost:4000",
	)
	if err != nil {
		t.Fatalf("set defaults: %v", err)
	}
	if !strings.Contains(out, "Default agent set to: terminal") {
		t.Errorf("missing agent confirmation: %s", out)
	}
	if !strings.Contains(out, "Default API URL set to: http://localhost:4000") {
		t.Errorf("missing api url confirmation: %s", out)
	}

	cfg := config.LoadFrom(cfgPath)
	if cfg.DefaultAgentName != "terminal" {
		t.Errorf("agent: got %q", cfg.DefaultAgentName)
	}
	if cfg.DefaultAPIURL != "http://localhost:4000" {
		t.Errorf("api url: got %q", cfg.DefaultAPIURL)
	}
}

func TestShowConfigBuiltins(t *testing.T) {
	resetState(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	out, _, err := runRoot(t, "", "--config-path", cfgPath, "--show-config")
	if err != nil {
		t.Fatalf("show-config: %v", err)
	}
	if !strings.Contains(out, cfgPath) {
		t.Errorf("missing config path: %s", out)
	}
	if !strings.Contains(out, "(not set)") {
		t.Errorf("missing unset markers: %s", out)
	}
	if !strings.Contains(out, api.DefaultBaseURL+" (built-in)") {
		t.Errorf("missing built-in api url: %s", out)
	}
}

func TestShowConfigJSON(t *testing.T) {
	resetState(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	cfg := &config.Config{}
	cfg.SetDefaultProject("p9", "Nine")
	if err := cfg.SaveTo(cfgPath); err != nil {
		t.Fatal(err)
	}

	out, _, err := runRoot(t, "", "--config-path", cfgPath, "--show-config", "--json")
	if err != nil {
		t.Fatalf("show-config: %v", err)
	}

	var got struct {
		ConfigPath       string `json:"config_path"`
		DefaultProjectID string `json:"default_project_id"`
		EffectiveAPIURL  string `json:"effective_api_url"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, out)
	}
	if got.ConfigPath != cfgPath {
		t.Errorf("config_path: got %q", got.ConfigPath)
	}
	if got.DefaultProjectID != "p9" {
		t.Errorf("default_project_id: got %q", got.DefaultProjectID)
	}
	if got.EffectiveAPIURL != api.DefaultBaseURL {
		t.Errorf("effective_api_url: got %q", got.EffectiveAPIURL)
	}
}

func TestResetConfig(t *testing.T) {
	resetState(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	cfg := &config.Config{DefaultAgentName: "terminal"}
	if err := cfg.SaveTo(cfgPath); err != nil {
		t.Fatal(err)
	}

	out, _, err := runRoot(t, "", "--config-path", cfgPath, "--reset-config")
	if err != nil {
		t.Fatalf("reset-config: %v", err)
	}
	if !strings.Contains(out, "Configuration reset") {
		t.Errorf("unexpected output: %s", out)
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Errorf("config file still present: %v", err)
	}

	resetState(t)
	out, _, err = runRoot(t, "", "--config-path", cfgPath, "--reset-config")
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if !strings.Contains(out, "No configuration file to reset") {
		t.Errorf("unexpected output: %s", out)
	}

	// After the reset only built-in defaults remain.
	resetState(t)
	out, _, err = runRoot(t, "", "--config-path", cfgPath, "--show-config")
	if err != nil {
		t.Fatalf("show-config: %v", err)
	}
	if strings.Contains(out, "terminal") {
		t.Errorf("stale default survived reset: %s", out)
	}
	if !strings.Contains(out, api.DefaultBaseURL+" (built-in)") {
		t.Errorf("missing built-in api url: %s", out)
	}
}
