package transport

// CreateTodoRequest is the POST /todos body. Deadline stays a raw string so
// the use case owns RFC3339 validation.
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
}

// UpdateTodoRequest is the PUT /todos/{id} body. The update is a full
// replace, so completed is a pointer to distinguish absent from false.
type UpdateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Completed   *bool   `json:"completed"`
}
