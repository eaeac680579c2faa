package tasks

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/quietdesk/deskmcp/internal/google"
)

// Client wraps the Google Tasks service.
type Client struct {
	svc *tasks.Service
	now func() time.Time
}

// NewClient creates a Tasks client sharing the provider's authenticated
// HTTP client.
func NewClient(ctx context.Context, provider *google.Provider) (*Client, error) {
	httpClient, err := provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service: %w", err)
	}

	return &Client{svc: svc, now: time.Now}, nil
}

// ListTaskLists lists all task lists for the authenticated user.
func (c *Client) ListTaskLists() ([]TaskList, error) {
	res, err := c.svc.Tasklists.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	lists := make([]TaskList, 0, len(res.Items))
	for _, tl := range res.Items {
		lists = append(lists, toTaskList(tl))
	}
	return lists, nil
}

// ListTasks lists tasks in a task list.
func (c *Client) ListTasks(taskListID string, showCompleted bool) ([]Task, error) {
	call := c.svc.Tasks.List(taskListID).ShowCompleted(showCompleted)
	if showCompleted {
		call = call.ShowHidden(true)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	list := make([]Task, 0, len(res.Items))
	for _, t := range res.Items {
		list = append(list, toTask(t))
	}
	return list, nil
}

// GetTask retrieves a single task.
func (c *Client) GetTask(taskListID, taskID string) (*Task, error) {
	t, err := c.svc.Tasks.Get(taskListID, taskID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task := toTask(t)
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(taskListID string, input TaskInput) (*Task, error) {
	created, err := c.svc.Tasks.Insert(taskListID, &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Due:    input.Due,
		Status: "needsAction",
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task := toTask(created)
	return &task, nil
}

// UpdateTask applies a partial update: the current task is fetched, only the
// supplied fields are overlaid, and the full record is submitted back.
// Unspecified fields keep their stored values.
func (c *Client) UpdateTask(taskListID, taskID string, input TaskInput) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing task: %w", err)
	}

	overlayTask(existing, input)

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	task := toTask(updated)
	return &task, nil
}

// CompleteTask marks a task completed while preserving every other field
// from a fresh read.
func (c *Client) CompleteTask(taskListID, taskID string) (*Task, error) {
	existing, err := c.svc.Tasks.Get(taskListID, taskID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	existing.Status = "completed"
	completed := c.now().Format(time.RFC3339)
	existing.Completed = &completed

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	task := toTask(updated)
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(taskListID, taskID string) error {
	if err := c.svc.Tasks.Delete(taskListID, taskID).Do(); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
