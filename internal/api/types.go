package api

// Project is a project on the TODOforAI service.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// projectListItem matches the wire shape of the project list endpoint, which
// wraps each project in an envelope.
type projectListItem struct {
	Project Project `json:"project"`
}

// Agent is a named worker on the TODOforAI service.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTodo is the request to create a TODO.
type CreateTodo struct {
	ID        string `json:"id,omitempty"`
	ProjectID string `json:"projectId"`
	AgentID   string `json:"agentId,omitempty"`
	AgentName string `json:"agentName,omitempty"`
	Content   string `json:"content"`
}

// Todo is a TODO as returned by the service.
type Todo struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	AgentName string `json:"agentName,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
