// Package api implements the HTTP client for the TODOforAI service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/todoforai/todoai-cli/internal/logging"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.todofor.ai"

// Client talks to the TODOforAI REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logging.Logger
}

// New creates a Client for the given base URL. An empty baseURL selects the
// production endpoint. The API key is required: without it no call can be
// authenticated, so construction fails before any network activity.
func New(baseURL, apiKey string, log *logging.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.Sub("api"),
	}, nil
}

// BaseURL returns the API base URL the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// ValidateKey checks the API key against the service.
func (c *Client) ValidateKey(ctx context.Context) error {
	var result struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/v1/auth/validate", nil, &result); err != nil {
		return err
	}
	if !result.Valid {
		msg := result.Error
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("api key validation failed: %s", msg)
	}
	return nil
}

// ListProjects fetches the projects visible to the API key.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var items []projectListItem
	if err := c.getJSON(ctx, "/api/v1/projects", nil, &items); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	projects := make([]Project, len(items))
	for i, item := range items {
		projects[i] = item.Project
	}
	return projects, nil
}

// ListAgents fetches the agents configured for the account.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.getJSON(ctx, "/api/v1/agents", nil, &agents); err != nil {
		return nil, fmt.Errorf("fetching agents: %w", err)
	}
	return agents, nil
}

// CreateTodo creates a TODO and returns the server's record of it.
func (c *Client) CreateTodo(ctx context.Context, req CreateTodo) (*Todo, error) {
	var todo Todo
	if err := c.postJSON(ctx, "/api/v1/todos", req, &todo); err != nil {
		return nil, err
	}
	if todo.ID == "" {
		todo.ID = req.ID
	}
	if todo.ProjectID == "" {
		todo.ProjectID = req.ProjectID
	}
	return &todo, nil
}

// GetTodo fetches a TODO by id.
func (c *Client) GetTodo(ctx context.Context, id string) (*Todo, error) {
	var todo Todo
	if err := c.getJSON(ctx, "/api/v1/todos/"+url.PathEscape(id), nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// FrontendURL returns the web URL for viewing a TODO, derived from the API
// base URL so local development stacks link to the local frontend.
func (c *Client) FrontendURL(projectID, todoID string) string {
	if strings.Contains(c.baseURL, "localhost:4000") || strings.Contains(c.baseURL, "127.0.0.1:4000") {
		return fmt.Sprintf("http://localhost:3000/%s/%s", projectID, todoID)
	}
	return fmt.Sprintf("https://todofor.ai/%s/%s", projectID, todoID)
}

// getJSON performs an authenticated GET request and decodes the JSON response
// into dst.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, dst)
}

// postJSON performs an authenticated POST request with a JSON body and
// optionally decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, body any, dst any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return &ConnectError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// responseError turns a non-2xx response into an APIError, preferring the
// server's error message when the body carries one.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return &APIError{Status: resp.StatusCode, Body: errResp.Error}
		}
		if errResp.Message != "" {
			return &APIError{Status: resp.StatusCode, Body: errResp.Message}
		}
	}
	return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
