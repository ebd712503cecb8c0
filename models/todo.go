package models

import "time"

// Todo is a single item of a user's todo list. Every todo has exactly one
// owner, set at creation and never reassigned.
type Todo struct {
	// TodoID is the unique identifier of the todo (UUIDv7 string).
	TodoID string `json:"_id"`

	// Title is required and stored trimmed.
	Title string `json:"title"`

	// Description is optional and stored trimmed.
	Description string `json:"description,omitempty"`

	// Completed is the completion flag. New todos start as not completed
	// and the only transition is a toggle.
	Completed bool `json:"completed"`

	// UserID references the owning user.
	UserID string `json:"user"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Todo model.
func (t Todo) TableName() string {
	return "todos"
}

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoUpdate represents a partial update of a single todo.
// Only non-nil fields will be updated.
type TodoUpdate struct {
	// Title, if set, replaces the title. It must not be blank.
	Title *string `json:"title,omitempty"`

	// Description, if set, replaces the description.
	Description *string `json:"description,omitempty"`

	// Completed, if set, replaces the completion flag.
	Completed *bool `json:"completed,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u TodoUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}
