package tasks

import (
	tasks "google.golang.org/api/tasks/v1"
)

// DefaultTaskList is the provider alias for the user's default task list.
const DefaultTaskList = "@default"

// TaskList is the projection of a Google Tasks task list.
type TaskList struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Updated string `json:"updated,omitempty"`
}

// Task is the projection of a task.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status,omitempty"` // "needsAction" or "completed"
	Due       string `json:"due,omitempty"`
	Completed string `json:"completed,omitempty"`
}

// TaskInput carries the fields of a create or partial-update call. Empty
// fields mean "not supplied" and keep the stored value on update.
type TaskInput struct {
	Title  string
	Notes  string
	Status string
	Due    string // RFC3339
}

// toTaskList converts a provider task list.
func toTaskList(tl *tasks.TaskList) TaskList {
	if tl == nil {
		return TaskList{}
	}
	return TaskList{ID: tl.Id, Title: tl.Title, Updated: tl.Updated}
}

// toTask converts a provider task.
func toTask(t *tasks.Task) Task {
	if t == nil {
		return Task{}
	}
	task := Task{
		ID:     t.Id,
		Title:  t.Title,
		Notes:  t.Notes,
		Status: t.Status,
		Due:    t.Due,
	}
	if t.Completed != nil {
		task.Completed = *t.Completed
	}
	return task
}

// overlayTask applies a partial update onto the stored task in place. Only
// supplied (non-empty) fields replace stored values; a partial update must
// never blank out an unspecified field.
func overlayTask(existing *tasks.Task, input TaskInput) {
	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Notes != "" {
		existing.Notes = input.Notes
	}
	if input.Status != "" {
		existing.Status = input.Status
	}
	if input.Due != "" {
		existing.Due = input.Due
	}
}
