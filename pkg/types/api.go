package types

// ExecuteRequest is the payload accepted by POST /api/v1/mcp/execute.
// Field names follow the agent-platform contract, hence the upper-case INPUT.
type ExecuteRequest struct {
	// Instruction text forwarded to the agent backend.
	// example: Hello!
	Input string `json:"INPUT" example:"Hello!"`
	// If true, the server replies immediately with a task id and the caller
	// polls GET /api/v1/tasks/{id} for the result.
	// example: false
	Polling bool `json:"polling" example:"false"`
}

// FinalOutput wraps a synchronous result.
type FinalOutput struct {
	// Result produced by the backend.
	Output any `json:"output"`
}

// TaskCreationResponse is returned when a request is accepted in polling mode.
type TaskCreationResponse struct {
	// ID used to poll task status.
	// example: 6f1c9c2e-8a7b-4d3e-9f10-2b45c1a7e9d0
	TaskID string `json:"task_id" example:"6f1c9c2e-8a7b-4d3e-9f10-2b45c1a7e9d0"`
}

// TaskStatusResponse is returned by GET /api/v1/tasks/{id}.
type TaskStatusResponse struct {
	TaskID string `json:"task_id"`
	// One of: pending, processing, completed, failed.
	// example: completed
	Status string `json:"status" example:"completed"`
	// Result, present once the task completed. For failed tasks this holds
	// {"error": "..."}.
	Result any `json:"result"`
}

// RootResponse is the liveness document served at GET /.
type RootResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
	// example: agentd is running
	Message string `json:"message" example:"agentd is running"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
