// Package config handles reading and writing the todoai configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// maxRecent caps the recent project/agent lists.
const maxRecent = 10

// ProjectRef identifies a project the user has targeted before.
type ProjectRef struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
}

// Config holds persisted todoai defaults. Every field is optional; an empty
// Config means built-in defaults apply.
type Config struct {
	DefaultProjectID   string       `json:"default_project_id,omitempty" toml:"default_project_id,omitempty"`
	DefaultProjectName string       `json:"default_project_name,omitempty" toml:"default_project_name,omitempty"`
	DefaultAgentName   string       `json:"default_agent_name,omitempty" toml:"default_agent_name,omitempty"`
	DefaultAPIURL      string       `json:"default_api_url,omitempty" toml:"default_api_url,omitempty"`
	RecentProjects     []ProjectRef `json:"recent_projects,omitempty" toml:"recent_projects,omitempty"`
	RecentAgents       []string     `json:"recent_agents,omitempty" toml:"recent_agents,omitempty"`
}

// Load reads the config from the default path.
func Load() *Config {
	return LoadFrom(Path())
}

// LoadFrom reads the config from a specific path. A missing, unreadable, or
// malformed file yields an empty Config: a broken config never blocks the CLI.
// Supports both JSON and TOML (detected by file extension; defaults to JSON).
func LoadFrom(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Config{}
	}
	var cfg Config
	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return &Config{}
	}
	return &cfg
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific path, creating parent directories as
// needed. Writes TOML when the path has a .toml extension, JSON otherwise.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	var (
		data []byte
		err  error
	)
	if filepath.Ext(path) == ".toml" {
		data, err = toml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Reset deletes the config file at path. Returns true if a file was removed.
func Reset(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("removing config: %w", err)
	}
	return true, nil
}

// SetDefaultProject records id as the default project and pushes it onto the
// recent list. The caller is responsible for saving.
func (c *Config) SetDefaultProject(id, name string) {
	if name == "" {
		name = id
	}
	c.DefaultProjectID = id
	c.DefaultProjectName = name

	recent := make([]ProjectRef, 0, len(c.RecentProjects)+1)
	recent = append(recent, ProjectRef{ID: id, Name: name})
	for _, p := range c.RecentProjects {
		if p.ID != id {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	c.RecentProjects = recent
}

// SetDefaultAgent records name as the default agent and pushes it onto the
// recent list. The caller is responsible for saving.
func (c *Config) SetDefaultAgent(name string) {
	c.DefaultAgentName = name

	recent := make([]string, 0, len(c.RecentAgents)+1)
	recent = append(recent, name)
	for _, a := range c.RecentAgents {
		if a != name {
			recent = append(recent, a)
		}
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	c.RecentAgents = recent
}

// SetDefaultAPIURL records url as the default API URL. The caller is
// responsible for saving.
func (c *Config) SetDefaultAPIURL(url string) {
	c.DefaultAPIURL = url
}
