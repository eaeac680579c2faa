package tasks_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quietdesk/deskmcp/internal/server"
	"github.com/quietdesk/deskmcp/internal/tasks"
	"github.com/quietdesk/deskmcp/internal/tools/common"
)

// RegisterTasksTools registers the Google Tasks tools with the MCP server.
func RegisterTasksTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTaskListsTool := mcp.NewTool("tasks_list_tasklists",
		mcp.WithDescription("List all task lists"),
	)

	s.AddTool(listTaskListsTool, common.InstrumentedToolHandler("tasks_list_tasklists", "tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTaskLists(ctx, request, sc)
		}))

	listTasksTool := mcp.NewTool("tasks_list_tasks",
		mcp.WithDescription("List tasks in a task list"),
		mcp.WithString("taskListId",
			mcp.Description("Task list ID (default: '@default')"),
		),
		mcp.WithBoolean("showCompleted",
			mcp.Description("Include completed tasks (default: true)"),
		),
	)

	s.AddTool(listTasksTool, common.InstrumentedToolHandler("tasks_list_tasks", "tasks", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTasks(ctx, request, sc)
		}))

	getTaskTool := mcp.NewTool("tasks_get_task",
		mcp.WithDescription("Get a single task"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("taskListId",
			mcp.Description("Task list ID (default: '@default')"),
		),
	)

	s.AddTool(getTaskTool, common.InstrumentedToolHandler("tasks_get_task", "tasks", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTask(ctx, request, sc)
		}))

	createTaskTool := mcp.NewTool("tasks_create_task",
		mcp.WithDescription("Create a new task"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("notes",
			mcp.Description("Task notes"),
		),
		mcp.WithString("due",
			mcp.Description("Due date as RFC3339 (e.g., '2026-09-01T00:00:00Z')"),
		),
		mcp.WithString("taskListId",
			mcp.Description("Task list ID (default: '@default')"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandler("tasks_create_task", "tasks", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateTask(ctx, request, sc)
		}))

	updateTaskTool := mcp.NewTool("tasks_update_task",
		mcp.WithDescription("Update a task. Only supplied fields change; everything else is preserved"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("title",
			mcp.Description("New task title"),
		),
		mcp.WithString("notes",
			mcp.Description("New task notes"),
		),
		mcp.WithString("due",
			mcp.Description("New due date as RFC3339"),
		),
		mcp.WithString("status",
			mcp.Description("New status: 'needsAction' or 'completed'"),
		),
		mcp.WithString("taskListId",
			mcp.Description("Task list ID (default: '@default')"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandler("tasks_update_task", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateTask(ctx, request, sc)
		}))

	completeTaskTool := mcp.NewTool("tasks_complete_task",
		mcp.WithDescription("Mark a task as completed"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("taskListId",
			mcp.Description("Task list ID (default: '@default')"),
		),
	)

	s.AddTool(completeTaskTool, common.InstrumentedToolHandler("tasks_complete_task", "tasks", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompleteTask(ctx, request, sc)
		}))

	deleteTaskTool := mcp.NewTool("tasks_delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("taskId",
			mcp.Required(),
			mcp.Description("The task ID"),
		),
		mcp.WithString("taskListId",
			mcp.Description("Task list ID (default: '@default')"),
		),
	)

	s.AddTool(deleteTaskTool, common.InstrumentedToolHandler("tasks_delete_task", "tasks", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteTask(ctx, request, sc)
		}))

	return nil
}

func handleListTaskLists(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	lists, err := client.ListTaskLists()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list task lists: %v", err)), nil
	}

	return common.JSONResult(lists)
}

type listTasksArgs struct {
	TaskListID    string `mapstructure:"taskListId"`
	ShowCompleted *bool  `mapstructure:"showCompleted"`
}

func handleListTasks(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := listTasksArgs{TaskListID: tasks.DefaultTaskList}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	showCompleted := true
	if args.ShowCompleted != nil {
		showCompleted = *args.ShowCompleted
	}

	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	list, err := client.ListTasks(args.TaskListID, showCompleted)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list tasks: %v", err)), nil
	}

	return common.JSONResult(list)
}

type taskIDArgs struct {
	TaskID     string `mapstructure:"taskId"`
	TaskListID string `mapstructure:"taskListId"`
}

func handleGetTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := taskIDArgs{TaskListID: tasks.DefaultTaskList}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.TaskID == "" {
		return mcp.NewToolResultError("taskId is required"), nil
	}

	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	task, err := client.GetTask(args.TaskListID, args.TaskID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get task: %v", err)), nil
	}

	return common.JSONResult(task)
}

type createTaskArgs struct {
	Title      string `mapstructure:"title"`
	Notes      string `mapstructure:"notes"`
	Due        string `mapstructure:"due"`
	TaskListID string `mapstructure:"taskListId"`
}

func handleCreateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := createTaskArgs{TaskListID: tasks.DefaultTaskList}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	task, err := client.CreateTask(args.TaskListID, tasks.TaskInput{
		Title: args.Title,
		Notes: args.Notes,
		Due:   args.Due,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create task: %v", err)), nil
	}

	return common.JSONResult(task)
}

type updateTaskArgs struct {
	TaskID     string `mapstructure:"taskId"`
	Title      string `mapstructure:"title"`
	Notes      string `mapstructure:"notes"`
	Due        string `mapstructure:"due"`
	Status     string `mapstructure:"status"`
	TaskListID string `mapstructure:"taskListId"`
}

func handleUpdateTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := updateTaskArgs{TaskListID: tasks.DefaultTaskList}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.TaskID == "" {
		return mcp.NewToolResultError("taskId is required"), nil
	}
	if args.Title == "" && args.Notes == "" && args.Due == "" && args.Status == "" {
		return mcp.NewToolResultError("at least one of title, notes, due or status is required"), nil
	}
	if args.Status != "" && args.Status != "needsAction" && args.Status != "completed" {
		return mcp.NewToolResultError("status must be 'needsAction' or 'completed'"), nil
	}

	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	task, err := client.UpdateTask(args.TaskListID, args.TaskID, tasks.TaskInput{
		Title:  args.Title,
		Notes:  args.Notes,
		Due:    args.Due,
		Status: args.Status,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update task: %v", err)), nil
	}

	return common.JSONResult(task)
}

func handleCompleteTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := taskIDArgs{TaskListID: tasks.DefaultTaskList}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.TaskID == "" {
		return mcp.NewToolResultError("taskId is required"), nil
	}

	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	task, err := client.CompleteTask(args.TaskListID, args.TaskID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to complete task: %v", err)), nil
	}

	return common.JSONResult(task)
}

func handleDeleteTask(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := taskIDArgs{TaskListID: tasks.DefaultTaskList}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.TaskID == "" {
		return mcp.NewToolResultError("taskId is required"), nil
	}

	client, err := sc.TasksClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Tasks", err), nil
	}

	if err := client.DeleteTask(args.TaskListID, args.TaskID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete task: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Task %s deleted successfully", args.TaskID)), nil
}
