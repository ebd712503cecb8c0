package models

// Every HTTP response body is an envelope with a success flag and an
// optional message, plus the payload fields of the particular endpoint.

// MessageResponse is the envelope without payload. It is also the shape of
// every error response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// Stack is only filled outside production.
	Stack string `json:"stack,omitempty"`
}

// AuthResponse is returned by signup, signin and reset-password.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    *User  `json:"user,omitempty"`
}

// UserResponse is returned by GET /api/auth/me.
type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// TodosResponse is returned by GET /api/todos.
type TodosResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Todos   []Todo `json:"todos"`
}

// TodoResponse is returned by the single-todo endpoints.
type TodoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Todo    Todo   `json:"todo"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Success bool   `json:"success"`
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
