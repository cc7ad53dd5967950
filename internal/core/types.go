package core

const (
	ServerName    = "mise-tasks-mcp"
	ServerVersion = "0.1.0"
	RepositoryURL = "https://github.com/sandevgo/misemcp"
)

// Task is one entry of `mise tasks ls`.
type Task struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
