package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.json"))
	if cfg.DefaultProjectID != "" || cfg.DefaultAgentName != "" || cfg.DefaultAPIURL != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := LoadFrom(path)
	if cfg.DefaultProjectID != "" || len(cfg.RecentAgents) != 0 {
		t.Fatalf("expected empty config for malformed file, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.json")
	cfg := &Config{
		DefaultProjectID:   "proj-1",
		DefaultProjectName: "Inbox",
		DefaultAgentName:   "gmail",
		DefaultAPIURL:      "http://localhost:4000",
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := LoadFrom(path)
	if loaded.DefaultProjectID != cfg.DefaultProjectID {
		t.Errorf("default_project_id: got %q, want %q", loaded.DefaultProjectID, cfg.DefaultProjectID)
	}
	if loaded.DefaultAgentName != cfg.DefaultAgentName {
		t.Errorf("default_agent_name: got %q, want %q", loaded.DefaultAgentName, cfg.DefaultAgentName)
	}
	if loaded.DefaultAPIURL != cfg.DefaultAPIURL {
		t.Errorf("default_api_url: got %q, want %q", loaded.DefaultAPIURL, cfg.DefaultAPIURL)
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{DefaultAgentName: "terminal", DefaultAPIURL: "https://api.todofor.ai"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Fatalf("expected TOML output for .toml path, got: %s", data)
	}

	loaded := LoadFrom(path)
	if loaded.DefaultAgentName != "terminal" {
		t.Errorf("default_agent_name: got %q, want %q", loaded.DefaultAgentName, "terminal")
	}
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	removed, err := Reset(path)
	if err != nil {
		t.Fatalf("reset missing file: %v", err)
	}
	if removed {
		t.Error("expected removed=false for missing file")
	}

	if err := (&Config{DefaultAgentName: "x"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}
	removed, err = Reset(path)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !removed {
		t.Error("expected removed=true")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file still exists after reset")
	}
}

func TestSetDefaultProjectRecents(t *testing.T) {
	cfg := &Config{}
	for i := 0; i < 15; i++ {
		cfg.SetDefaultProject(fmt.Sprintf("p%d", i), fmt.Sprintf("Project %d", i))
	}
	if cfg.DefaultProjectID != "p14" {
		t.Errorf("default_project_id: got %q, want %q", cfg.DefaultProjectID, "p14")
	}
	if len(cfg.RecentProjects) != maxRecent {
		t.Fatalf("recent_projects: got %d entries, want %d", len(cfg.RecentProjects), maxRecent)
	}
	if cfg.RecentProjects[0].ID != "p14" {
		t.Errorf("most recent project: got %q, want %q", cfg.RecentProjects[0].ID, "p14")
	}

	// Re-selecting an existing project moves it to the front without duplication.
	cfg.SetDefaultProject("p10", "Project 10")
	if cfg.RecentProjects[0].ID != "p10" {
		t.Errorf("most recent project: got %q, want %q", cfg.RecentProjects[0].ID, "p10")
	}
	seen := map[string]int{}
	for _, p := range cfg.RecentProjects {
		seen[p.ID]++
	}
	if seen["p10"] != 1 {
		t.Errorf("p10 appears %d times in recents, want 1", seen["p10"])
	}
}

func TestSetDefaultAgentRecents(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaultAgent("gmail")
	cfg.SetDefaultAgent("terminal")
	cfg.SetDefaultAgent("gmail")
	if cfg.DefaultAgentName != "gmail" {
		t.Errorf("default_agent_name: got %q, want %q", cfg.DefaultAgentName, "gmail")
	}
	want := []string{"gmail", "terminal"}
	if len(cfg.RecentAgents) != len(want) {
		t.Fatalf("recent_agents: got %v, want %v", cfg.RecentAgents, want)
	}
	for i := range want {
		if cfg.RecentAgents[i] != want[i] {
			t.Errorf("recent_agents[%d]: got %q, want %q", i, cfg.RecentAgents[i], want[i])
		}
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"empty uses default", "", Path()},
		{"existing directory", dir, filepath.Join(dir, "config.json")},
		{"trailing separator", dir + string(os.PathSeparator), filepath.Join(dir, "config.json")},
		{"explicit file", filepath.Join(dir, "custom.json"), filepath.Join(dir, "custom.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.arg); got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}
