// Package tools defines the fixed set of operations the assistant may
// invoke against the task service: getTasks, addTask, updateTask and
// deleteTask. Each tool is schema validation and dispatch only; the
// business rules live in the task service.
package tools

import (
	"log/slog"
	"time"

	"github.com/elee1766/taskdeck/src/agent"
	"github.com/elee1766/taskdeck/src/taskservice"
)

// NewToolbox builds the assistant's toolbox over the given service.
func NewToolbox(svc *taskservice.Service, logger *slog.Logger) (*agent.Toolbox, error) {
	tb := agent.NewToolbox()
	if logger != nil {
		tb.RegisterMiddleware(agent.LoggingMiddleware(logger))
	}

	builders := []func(*taskservice.Service) (agent.Tool, error){
		GetTasksTool,
		AddTaskTool,
		UpdateTaskTool,
		DeleteTaskTool,
	}
	for _, build := range builders {
		tool, err := build(svc)
		if err != nil {
			return nil, err
		}
		if err := tb.RegisterTool(tool); err != nil {
			return nil, err
		}
	}
	return tb, nil
}

// parseDueDate accepts a bare ISO date or a full RFC 3339 timestamp.
func parseDueDate(s string) (*time.Time, error) {
	return taskservice.ParseDueDate(s)
}
